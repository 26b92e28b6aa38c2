package catalog_models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BandStatus string

const (
	BandStatusActive      BandStatus = "Active"
	BandStatusOnHold      BandStatus = "On hold"
	BandStatusSplitUp     BandStatus = "Split-up"
	BandStatusChangedName BandStatus = "Changed name"
	BandStatusUnknown     BandStatus = "Unknown"
)

var knownStatuses = []BandStatus{
	BandStatusActive,
	BandStatusOnHold,
	BandStatusSplitUp,
	BandStatusChangedName,
	BandStatusUnknown,
}

// ParseBandStatus 大小写不敏感地映射到已知状态，未知文本原样保留
func ParseBandStatus(raw string) BandStatus {
	raw = strings.TrimSpace(raw)
	for _, s := range knownStatuses {
		if strings.EqualFold(raw, string(s)) {
			return s
		}
	}
	return BandStatus(raw)
}

// BandProfile 乐队除唱片目录以外的全部字段，存储形态与返回形态共用
type BandProfile struct {
	ObjectID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID            int64              `bson:"id" json:"id"`
	Name          string             `bson:"name" json:"name"`
	NameSlug      string             `bson:"name_slug" json:"name_slug"`
	Status        BandStatus         `bson:"status" json:"status"`
	Country       string             `bson:"country" json:"country"`
	City          string             `bson:"city" json:"city"`
	FormedIn      string             `bson:"formed_in" json:"formed_in"`
	YearsActive   string             `bson:"years_active" json:"years_active"`
	Genres        string             `bson:"genres" json:"genres"`
	Themes        string             `bson:"themes" json:"themes"`
	Label         string             `bson:"label" json:"label"`
	CurrentLineup []MemberLineUp     `bson:"current_lineup" json:"current_lineup"`
	PastLineup    []MemberLineUp     `bson:"past_lineup" json:"past_lineup"`
	Links         []SocialLink       `bson:"links" json:"links"`
	Description   string             `bson:"description" json:"description"`
	PhotoURL      string             `bson:"photo_url" json:"photo_url"`
	LogoURL       string             `bson:"logo_url" json:"logo_url"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
	ParsingError  string             `bson:"parsing_error,omitempty" json:"parsing_error,omitempty"`
}

// Band 对外返回形态：唱片目录为条目列表
type Band struct {
	BandProfile `bson:",inline"`
	Discography []DiscographyEntry `bson:"discography" json:"discography"`
}

// BandDocument 持久化形态：唱片目录只保存专辑的存储引用
type BandDocument struct {
	BandProfile `bson:",inline"`
	Discography []primitive.ObjectID `bson:"discography" json:"discography"`
}

func (Band) PageKind() PageKind { return PageKindBand }

// DiscographyEntry 唱片目录条目；与已存储的 Album 文档字段同名，可直接由关联查询解码
type DiscographyEntry struct {
	ID          int64  `bson:"id" json:"id"`
	Title       string `bson:"title" json:"title"`
	TitleSlug   string `bson:"title_slug" json:"title_slug"`
	Type        string `bson:"type" json:"type"`
	ReleaseDate string `bson:"release_date" json:"release_date"`
	CoverURL    string `bson:"cover_url,omitempty" json:"cover_url,omitempty"`
	URL         string `bson:"url" json:"url"`
}

type Discography []DiscographyEntry

func (Discography) PageKind() PageKind { return PageKindDiscography }

// MemberLineUp 乐队阵容中的一行
type MemberLineUp struct {
	ID           *int64      `bson:"id" json:"id"`
	Fullname     string      `bson:"fullname" json:"fullname"`
	FullnameSlug string      `bson:"fullname_slug" json:"fullname_slug"`
	Role         string      `bson:"role" json:"role"`
	URL          string      `bson:"url,omitempty" json:"url,omitempty"`
	OtherBands   []OtherBand `bson:"other_bands" json:"other_bands"`
}

// OtherBand "See also" 交叉引用；无同行超链接时 ID 为空
type OtherBand struct {
	ID       *int64 `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	NameSlug string `bson:"name_slug" json:"name_slug"`
}

type SocialLink struct {
	Social string `bson:"social" json:"social"`
	URL    string `bson:"url" json:"url"`
}

type SocialLinks []SocialLink

func (SocialLinks) PageKind() PageKind { return PageKindLinks }

// BandDescription 乐队简介 HTML
type BandDescription string

func (BandDescription) PageKind() PageKind { return PageKindDescription }
