package services

import (
	"context"
	"imgstore/internal/assets"
	"imgstore/internal/models"
	"imgstore/internal/viewlog"
	"iter"
	"sort"
)

type ViewReportServiceInterface interface {
	RecordView(ctx context.Context, username string, imageID int, caption string) error
	Today(ctx context.Context) ([]*models.ViewLogEntry, error)
	Day(ctx context.Context, day string) ([]*models.ViewLogEntry, error)
	Counts(ctx context.Context, day string) ([]*models.ViewCount, error)
	RecentDays() []string
	Enabled() bool
}

// ViewReportService records views against the asset reference and
// materializes view log partitions for reporting.
type ViewReportService struct {
	viewLog viewlog.ViewLogInterface
	assets  assets.AssetStoreInterface
}

func NewViewReportService(viewLog viewlog.ViewLogInterface, assetStore assets.AssetStoreInterface) ViewReportServiceInterface {
	return &ViewReportService{
		viewLog: viewLog,
		assets:  assetStore,
	}
}

func (vs *ViewReportService) RecordView(ctx context.Context, username string, imageID int, caption string) error {
	return vs.viewLog.AppendView(ctx, username, imageID, caption, vs.assets.ResolveReference(imageID))
}

func (vs *ViewReportService) Today(ctx context.Context) ([]*models.ViewLogEntry, error) {
	return drain(vs.viewLog.QueryToday(ctx))
}

func (vs *ViewReportService) Day(ctx context.Context, day string) ([]*models.ViewLogEntry, error) {
	if _, err := viewlog.ParseDay(day); err != nil {
		return nil, err
	}
	return drain(vs.viewLog.QueryDay(ctx, day))
}

// Counts aggregates views per image for day, or for today when day is empty.
// Most viewed first; ties go to the lower image id.
func (vs *ViewReportService) Counts(ctx context.Context, day string) ([]*models.ViewCount, error) {
	var (
		entries []*models.ViewLogEntry
		err     error
	)
	if day == "" {
		entries, err = vs.Today(ctx)
	} else {
		entries, err = vs.Day(ctx, day)
	}
	if err != nil {
		return nil, err
	}

	byImage := make(map[int]*models.ViewCount)
	for _, e := range entries {
		c, ok := byImage[e.ImageID]
		if !ok {
			c = &models.ViewCount{ImageID: e.ImageID, Caption: e.Caption, AssetURI: e.AssetURI}
			byImage[e.ImageID] = c
		}
		c.Views++
	}

	counts := make([]*models.ViewCount, 0, len(byImage))
	for _, c := range byImage {
		counts = append(counts, c)
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Views != counts[j].Views {
			return counts[i].Views > counts[j].Views
		}
		return counts[i].ImageID < counts[j].ImageID
	})
	return counts, nil
}

func (vs *ViewReportService) RecentDays() []string {
	return vs.viewLog.RecentDays()
}

func (vs *ViewReportService) Enabled() bool {
	return vs.viewLog.Enabled()
}

func drain(seq iter.Seq2[*models.ViewLogEntry, error]) ([]*models.ViewLogEntry, error) {
	entries := make([]*models.ViewLogEntry, 0)
	for e, err := range seq {
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
