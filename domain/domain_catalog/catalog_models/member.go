package catalog_models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member 艺人页面
type Member struct {
	ObjectID     primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID           int64              `bson:"id" json:"id"`
	Fullname     string             `bson:"fullname" json:"fullname"`
	FullnameSlug string             `bson:"fullname_slug" json:"fullname_slug"`
	RealName     string             `bson:"real_name" json:"real_name"`
	Age          string             `bson:"age" json:"age"`
	PlaceOfBirth string             `bson:"place_of_birth" json:"place_of_birth"`
	Gender       string             `bson:"gender" json:"gender"`
	PhotoURL     string             `bson:"photo_url" json:"photo_url"`
	Biography    string             `bson:"biography" json:"biography"`
	ActiveBands  []MemberBand       `bson:"active_bands" json:"active_bands"`
	PastBands    []MemberBand       `bson:"past_bands" json:"past_bands"`
	GuestSession []MemberBand       `bson:"guest_session" json:"guest_session"`
	Live         []MemberBand       `bson:"live" json:"live"`
	MiscStaff    []MemberBand       `bson:"misc_staff" json:"misc_staff"`
	Links        []SocialLink       `bson:"links" json:"links"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
	ParsingError string             `bson:"parsing_error,omitempty" json:"parsing_error,omitempty"`
}

func (Member) PageKind() PageKind { return PageKindMember }

// MemberBand 艺人参与的乐队；未链接的乐队 ID 为空
type MemberBand struct {
	ID       *int64        `bson:"id" json:"id"`
	Name     string        `bson:"name" json:"name"`
	NameSlug string        `bson:"name_slug" json:"name_slug"`
	Role     string        `bson:"role" json:"role"`
	Albums   []MemberAlbum `bson:"albums" json:"albums"`
}

type MemberAlbum struct {
	ID          int64  `bson:"id" json:"id"`
	Title       string `bson:"title" json:"title"`
	TitleSlug   string `bson:"title_slug" json:"title_slug"`
	ReleaseDate string `bson:"release_date" json:"release_date"`
	Role        string `bson:"role" json:"role"`
}
