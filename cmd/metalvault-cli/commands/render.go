package commands

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
)

func kindList() string {
	kinds := make([]string, 0, len(catalog_models.PageKinds))
	for _, k := range catalog_models.PageKinds {
		kinds = append(kinds, string(k))
	}
	return strings.Join(kinds, ", ")
}

func printRecord(w io.Writer, record catalog_models.Record, asTable bool) error {
	if !asTable {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(record)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	switch r := record.(type) {
	case *catalog_models.Band:
		t.SetTitle(r.Name)
		t.AppendRows([]table.Row{
			{"id", r.ID},
			{"status", r.Status},
			{"country", r.Country},
			{"location", r.City},
			{"formed in", r.FormedIn},
			{"genres", r.Genres},
			{"label", r.Label},
			{"current lineup", len(r.CurrentLineup)},
			{"past lineup", len(r.PastLineup)},
		})
		appendParsingError(t, r.ParsingError)
	case *catalog_models.Album:
		t.SetTitle(r.BandName() + " - " + r.Title)
		t.AppendHeader(table.Row{"#", "Title", "Duration", "CD", "Side"})
		for _, track := range r.Tracklist {
			t.AppendRow(table.Row{track.Number, track.Title, track.Duration, derefInt(track.CDNumber), derefString(track.Side)})
		}
		appendParsingError(t, r.ParsingError)
	case *catalog_models.Member:
		t.SetTitle(r.Fullname)
		t.AppendHeader(table.Row{"Band", "Role", "Albums"})
		for _, band := range append(append([]catalog_models.MemberBand{}, r.ActiveBands...), r.PastBands...) {
			t.AppendRow(table.Row{band.Name, band.Role, len(band.Albums)})
		}
		appendParsingError(t, r.ParsingError)
	case catalog_models.Discography:
		t.AppendHeader(table.Row{"ID", "Title", "Type", "Year"})
		for _, entry := range r {
			t.AppendRow(table.Row{entry.ID, entry.Title, entry.Type, entry.ReleaseDate})
		}
	case catalog_models.BandSearchResults:
		t.AppendHeader(table.Row{"ID", "Name", "Genre", "Country"})
		for _, res := range r.Results {
			t.AppendRow(table.Row{res.ID, res.Name, res.Genre, res.Country})
		}
		t.AppendFooter(table.Row{"", "total", r.TotalRecords, ""})
		appendParsingError(t, r.ParsingError)
	case catalog_models.AlbumSearchResults:
		t.AppendHeader(table.Row{"ID", "Band", "Title", "Type", "Date"})
		for _, res := range r.Results {
			t.AppendRow(table.Row{res.ID, res.BandName, res.Title, res.Type, res.ReleaseDate})
		}
		t.AppendFooter(table.Row{"", "", "total", r.TotalRecords, ""})
		appendParsingError(t, r.ParsingError)
	case catalog_models.CatalogStats:
		t.AppendHeader(table.Row{"Counter", "Value"})
		t.AppendRows([]table.Row{
			{"active", r.Bands.Active},
			{"on hold", r.Bands.OnHold},
			{"split-up", r.Bands.SplitUp},
			{"changed name", r.Bands.ChangedName},
			{"unknown", r.Bands.Unknown},
			{"bands", r.Bands.Total},
			{"albums", r.Albums},
			{"songs", r.Songs},
		})
		appendParsingError(t, r.ParsingError)
	case catalog_models.SocialLinks:
		t.AppendHeader(table.Row{"Site", "URL"})
		for _, link := range r {
			t.AppendRow(table.Row{link.Social, link.URL})
		}
	default:
		// 歌词与简介是纯文本
		t.AppendRow(table.Row{record})
	}

	t.Render()
	return nil
}

func appendParsingError(t table.Writer, msg string) {
	if msg != "" {
		t.SetCaption("parsing error: " + msg)
	}
}

func derefInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
