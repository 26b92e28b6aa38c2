package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/metalvault/metalvault/bootstrap"
	"github.com/metalvault/metalvault/broadcast"
	"github.com/spf13/cobra"
)

func init() {
	refreshCmd.AddCommand(refreshBandCmd)
	rootCmd.AddCommand(refreshCmd)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Forces a re-fetch of stored catalog records.",
}

var refreshBandCmd = &cobra.Command{
	Use:   "band <id>",
	Short: "Re-fetches a band with its discography and replaces the stored copy.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid band id %q", args[0])
		}

		// 复用根命令加载的配置，保留 -v 设置的日志级别
		app, err := bootstrap.NewApplication(env)
		if err != nil {
			return err
		}
		defer app.Close()

		sub := app.Events.Subscribe(broadcast.DefaultChannel)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for event := range sub.Events() {
				slog.Info(event.Message, "event", event.Type)
			}
		}()

		info := app.Catalog.Bands.RefreshBand(cmd.Context(), id)
		sub.Close()
		<-done

		if info.Err != nil {
			return info.Err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "Album", "Type", "Year"})
		for i, entry := range info.Data.Discography {
			t.AppendRow(table.Row{i + 1, entry.Title, entry.Type, entry.ReleaseDate})
		}
		t.SetTitle(fmt.Sprintf("%s (%d) - %s", info.Data.Name, info.Data.ID, info.Data.Status))
		t.AppendFooter(table.Row{"", "processing time", "", info.ProcessingTime.Round(time.Millisecond).String()})
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
