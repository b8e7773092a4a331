package export

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/repository"
)

// Service is a tiny façade over repositories that produces XLSX bytes
// for founder-facing exports.
type Service struct {
	startupRepo repository.StartupRepository
	appRepo     repository.ApplicationRepository
	logger      *zap.Logger
}

func NewService(startupRepo repository.StartupRepository, appRepo repository.ApplicationRepository, logger *zap.Logger) *Service {
	return &Service{
		startupRepo: startupRepo,
		appRepo:     appRepo,
		logger:      logger,
	}
}

// ApplicationsXLSX returns a workbook listing every application across
// the startup's jobs. Only the founder may export.
func (s *Service) ApplicationsXLSX(ctx context.Context, callerID, startupID uuid.UUID) ([]byte, error) {
	start := time.Now()

	st, err := s.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, common.NotFoundError("startup not found")
		}
		return nil, common.WrapError(err, "get startup")
	}
	if st.FounderID != callerID {
		return nil, common.ForbiddenError("only the founder may export applications")
	}

	apps, err := s.appRepo.ListByStartup(ctx, startupID)
	if err != nil {
		return nil, common.WrapError(err, "query applications")
	}

	f := excelize.NewFile()
	const sheet = "Applications"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIndex, _ := f.GetSheetIndex("Sheet1"); defIndex != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Applicant",
		"Username",
		"Email",
		"Job Title",
		"Status",
		"Applied At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, a := range apps {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		name, username, email := "", "", ""
		if a.Profile != nil {
			name = a.Profile.FullName
			username = a.Profile.Username
			email = a.Profile.Email
		}
		jobTitle := ""
		if a.Job != nil {
			jobTitle = a.Job.Title
		}

		write(1, name)
		write(2, username)
		write(3, email)
		write(4, jobTitle)
		write(5, string(a.Status))
		write(6, a.CreatedAt.UTC().Format(time.RFC3339))
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, common.WrapError(err, "write workbook")
	}

	s.logger.Info("applications exported",
		zap.String("startup_id", startupID.String()),
		zap.Int("rows", len(apps)),
		zap.Duration("took", time.Since(start)))
	return buf.Bytes(), nil
}
