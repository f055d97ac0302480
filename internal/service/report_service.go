package service

import (
	"context"
	"math"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"testhub/internal/dto"
	"testhub/internal/repository"
	"testhub/pkg/constants"
)

type ReportService interface {
	Summary(ctx context.Context) (*dto.ReportSummary, error)
}

type reportService struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) Summary(ctx context.Context) (*dto.ReportSummary, error) {
	summary := &dto.ReportSummary{}
	var rows []repository.ResultStatusRow

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary.TotalRequirements, err = s.repo.CountRequirements()
		return
	})
	g.Go(func() (err error) {
		summary.TotalTestCases, err = s.repo.CountTestCases()
		return
	})
	g.Go(func() (err error) {
		summary.TotalTestRuns, err = s.repo.CountTestRuns()
		return
	})
	g.Go(func() (err error) {
		summary.CoveredRequirements, err = s.repo.CountCoveredRequirements()
		return
	})
	g.Go(func() (err error) {
		rows, err = s.repo.ListResultStatuses()
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.CoveragePercent = percent(summary.CoveredRequirements, summary.TotalRequirements)

	counts := lo.CountValues(lo.Values(LatestResultStatuses(rows)))
	summary.TestsPassed = counts[constants.ResultPass]
	summary.TestsFailed = counts[constants.ResultFail]
	summary.TestsPending = counts[constants.ResultPending]
	summary.PassRate = percent(int64(summary.TestsPassed), int64(summary.TestsPassed+summary.TestsFailed+summary.TestsPending))

	return summary, nil
}

// LatestResultStatuses 每个用例取ID最大的结果状态; rows 需按ID升序
func LatestResultStatuses(rows []repository.ResultStatusRow) map[int64]string {
	return lo.SliceToMap(rows, func(r repository.ResultStatusRow) (int64, string) {
		return r.TestCaseID, r.Status
	})
}

// percent 保留一位小数, 分母为0时返回0
func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(total)) / 10
}
