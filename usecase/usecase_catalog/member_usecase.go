package usecase_catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_interface"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/parser"
)

type MemberUsecase struct {
	deps *Deps
}

var _ catalog_interface.MemberUsecase = (*MemberUsecase)(nil)

func NewMemberUsecase(deps *Deps) *MemberUsecase {
	return &MemberUsecase{deps: deps}
}

func (uc *MemberUsecase) GetMember(ctx context.Context, id int64) catalog_models.PageInfo[*catalog_models.Member] {
	start := time.Now()
	info := catalog_models.PageInfo[*catalog_models.Member]{URL: uc.deps.Endpoints.MemberURL(id)}
	defer finish(&info, start)

	ctx, cancel := uc.deps.withTimeout(ctx)
	defer cancel()

	cached, err := uc.deps.Members.FindByID(ctx, id)
	if err != nil {
		info.Err = err
		return info
	}
	if cached != nil {
		if uc.deps.Policy.Classify(cached.UpdatedAt) == Stale {
			uc.deps.Scheduler.Schedule(ctx, fmt.Sprintf("member:%d", id), func(ctx context.Context) error {
				_, err := uc.sync(ctx, id, writeUpsert)
				return err
			})
		}
		info.Data = cached
		info.Cached = true
		return info
	}

	member, err := uc.sync(ctx, id, writeInsert)
	if err != nil {
		info.Err = err
		return info
	}
	info.Data = member
	return info
}

func (uc *MemberUsecase) sync(ctx context.Context, id int64, mode writeMode) (*catalog_models.Member, error) {
	page, err := uc.deps.Fetcher.Fetch(ctx, uc.deps.Endpoints.MemberURL(id))
	if err != nil {
		return nil, err
	}

	member := parser.ExtractMember(page)
	if err := checkExtracted(member.Fullname, member.ParsingError); err != nil {
		return nil, fmt.Errorf("member %d: %w", id, err)
	}
	if member.ID == 0 {
		member.ID = id
	}
	if member.ParsingError != "" {
		slog.Warn("member extracted with errors", "member_id", id, "parsing_error", member.ParsingError)
	}

	if links, err := uc.deps.Fetcher.Fetch(ctx, uc.deps.Endpoints.MemberLinksURL(member.ID)); err == nil {
		member.Links = parser.ExtractLinks(links)
	} else {
		slog.Warn("member links unavailable", "member_id", id, "err", err)
	}

	ref, err := persist[catalog_models.Member](ctx, uc.deps.Members, member.ID, member, mode)
	if err != nil {
		return nil, err
	}
	member.ObjectID = ref
	return member, nil
}
