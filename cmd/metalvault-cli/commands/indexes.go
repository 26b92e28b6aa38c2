package commands

import (
	"github.com/metalvault/metalvault/bootstrap"
	"github.com/metalvault/metalvault/mongo"
	"github.com/spf13/cobra"
)

var dropIndexes bool

func init() {
	indexesCmd.Flags().BoolVar(&dropIndexes, "drop", false, "drop all catalog indexes before creating them")
	rootCmd.AddCommand(indexesCmd)
}

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Creates the store indexes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := bootstrap.NewMongoDatabase(env)
		if err != nil {
			return err
		}
		defer bootstrap.CloseMongoDBConnection(client)

		db := client.Database(env.DBName)
		if dropIndexes {
			mongo.DropAllIndexes(db)
		}
		mongo.CreateIndexes(db)
		return nil
	},
}
