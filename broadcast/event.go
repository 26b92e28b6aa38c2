package broadcast

import (
	"fmt"

	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/domain/domain_util"
)

type EventType string

const (
	EventStartRandom EventType = "start_random"
	EventNewAlbum    EventType = "new_album"
	EventAlbumNumber EventType = "album_number"
	EventBandLinks   EventType = "band_links"
)

type Event struct {
	Type    EventType   `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func StartRandom() Event {
	return Event{Type: EventStartRandom, Message: "Fetching a random band"}
}

func BandLinks(bandName string) Event {
	return Event{Type: EventBandLinks, Message: fmt.Sprintf("Collecting links for %s", bandName)}
}

type NewAlbumData struct {
	ID       int64  `json:"id"`
	CoverURL string `json:"cover_url"`
}

func NewAlbum(album *catalog_models.Album) Event {
	return Event{
		Type:    EventNewAlbum,
		Message: fmt.Sprintf("Added new album %s - %s (%s)", album.BandName(), album.Title, album.ReleaseDate),
		Data:    NewAlbumData{ID: album.ID, CoverURL: album.CoverURL},
	}
}

func AlbumNumber(progress domain_util.ProgressSnapshot) Event {
	return Event{
		Type:    EventAlbumNumber,
		Message: fmt.Sprintf("Added %d albums", progress.Created),
		Data:    progress,
	}
}
