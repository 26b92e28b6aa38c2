package catalog_models

type BandStats struct {
	Active      int64 `bson:"active" json:"active"`
	OnHold      int64 `bson:"on_hold" json:"on_hold"`
	SplitUp     int64 `bson:"split_up" json:"split_up"`
	ChangedName int64 `bson:"changed_name" json:"changed_name"`
	Unknown     int64 `bson:"unknown" json:"unknown"`
	Total       int64 `bson:"total" json:"total"`
}

// Add 按状态累加，未识别的状态计入 Unknown
func (s *BandStats) Add(status BandStatus, n int64) {
	switch ParseBandStatus(string(status)) {
	case BandStatusActive:
		s.Active += n
	case BandStatusOnHold:
		s.OnHold += n
	case BandStatusSplitUp:
		s.SplitUp += n
	case BandStatusChangedName:
		s.ChangedName += n
	default:
		s.Unknown += n
	}
	s.Total += n
}

type CatalogStats struct {
	Bands        BandStats `json:"bands"`
	Albums       int64     `json:"albums"`
	Songs        int64     `json:"songs"`
	ParsingError string    `json:"parsing_error,omitempty"`
}

func (CatalogStats) PageKind() PageKind { return PageKindStats }

// StatsReport 本地存储统计与远端目录统计
type StatsReport struct {
	Local  CatalogStats `json:"local"`
	Remote CatalogStats `json:"remote"`
}
