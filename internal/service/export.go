package service

import (
	"bytes"

	"aw-tracker-bot/internal/export"
	"aw-tracker-bot/internal/performance"

	"github.com/sirupsen/logrus"
)

type ExportService struct {
	stats  *StatsService
	logger *logrus.Logger
}

func NewExportService(stats *StatsService, logger *logrus.Logger) *ExportService {
	return &ExportService{stats: stats, logger: newServiceLogger(logger)}
}

// Export renders the month in the given format and returns the file name and contents.
func (s *ExportService) Export(format export.Format, month performance.Month) (string, []byte, error) {
	ms, err := s.stats.Month(month)
	if err != nil {
		return "", nil, err
	}

	data := export.Data{
		Month:       month.String(),
		Report:      ms.Report,
		Converter:   ms.Converter,
		Jobs:        ms.Jobs,
		Days:        performance.DayRows(ms.ByDay()),
		Absences:    ms.Absences,
		Schedule:    ms.Schedule,
		GeneratedAt: s.stats.Now(),
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, data); err != nil {
		s.logger.WithError(err).WithField("format", format).Error("Failed to render export")
		return "", nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"format": format,
		"month":  month.String(),
		"bytes":  buf.Len(),
	}).Info("Export generated")
	return export.FileName(format, month.String()), buf.Bytes(), nil
}
