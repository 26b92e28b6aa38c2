package usecase_catalog

import (
	"time"

	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
)

// Freshness 存储副本相对刷新策略的状态
type Freshness int

const (
	Fresh Freshness = iota
	Stale
)

func (f Freshness) String() string {
	if f == Stale {
		return "stale"
	}
	return "fresh"
}

const DefaultStaleAfter = 15 * 24 * time.Hour

// DefaultRefreshStatuses 已解散或改名的乐队不会再变化，不参与后台刷新
var DefaultRefreshStatuses = []catalog_models.BandStatus{
	catalog_models.BandStatusActive,
	catalog_models.BandStatusOnHold,
	catalog_models.BandStatusUnknown,
}

// RefreshPolicy 读穿透缓存的新鲜度判定
type RefreshPolicy struct {
	StaleAfter time.Duration
	eligible   map[catalog_models.BandStatus]struct{}
	now        func() time.Time
}

func NewRefreshPolicy(staleAfter time.Duration, statuses []catalog_models.BandStatus) RefreshPolicy {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	if len(statuses) == 0 {
		statuses = DefaultRefreshStatuses
	}
	eligible := make(map[catalog_models.BandStatus]struct{}, len(statuses))
	for _, s := range statuses {
		eligible[catalog_models.ParseBandStatus(string(s))] = struct{}{}
	}
	return RefreshPolicy{StaleAfter: staleAfter, eligible: eligible, now: time.Now}
}

func DefaultRefreshPolicy() RefreshPolicy {
	return NewRefreshPolicy(DefaultStaleAfter, DefaultRefreshStatuses)
}

// WithClock 替换时钟，测试使用
func (p RefreshPolicy) WithClock(now func() time.Time) RefreshPolicy {
	p.now = now
	return p
}

func (p RefreshPolicy) Now() time.Time {
	if p.now == nil {
		return time.Now()
	}
	return p.now()
}

// Eligible 状态是否允许后台刷新
func (p RefreshPolicy) Eligible(status catalog_models.BandStatus) bool {
	_, ok := p.eligible[catalog_models.ParseBandStatus(string(status))]
	return ok
}

// ClassifyBand 超过阈值且状态允许刷新时为 Stale；阈值本身算作新鲜
func (p RefreshPolicy) ClassifyBand(updatedAt time.Time, status catalog_models.BandStatus) Freshness {
	if !p.Eligible(status) {
		return Fresh
	}
	return p.Classify(updatedAt)
}

// Classify 专辑与艺人没有状态，总是参与刷新
func (p RefreshPolicy) Classify(updatedAt time.Time) Freshness {
	if p.Now().Sub(updatedAt) > p.StaleAfter {
		return Stale
	}
	return Fresh
}
