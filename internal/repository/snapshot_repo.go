package repository

import (
	"time"

	"aw-tracker-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SnapshotQuery selects one calculation's worth of data.
type SnapshotQuery struct {
	// JobsFrom and JobsTo bound created_at as a half-open interval.
	JobsFrom time.Time
	JobsTo   time.Time
	// AbsenceFrom and AbsenceTo are inclusive YYYY-MM-DD dates.
	AbsenceFrom string
	AbsenceTo   string
	// Month selects a target override; empty skips the lookup.
	Month string
}

// Snapshot is read inside a single transaction so that a calculation never
// mixes data from before and after a concurrent write.
type Snapshot struct {
	Jobs     []models.Job
	Absences []models.Absence
	// Schedule, Settings and Target are nil when not stored.
	Schedule *models.WorkSchedule
	Settings *models.FormulaSetting
	Target   *models.MonthlyTarget
}

type SnapshotRepository interface {
	Load(q SnapshotQuery) (*Snapshot, error)
}

type GormSnapshotRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewGormSnapshotRepository expects the tables to be migrated by the other repositories.
func NewGormSnapshotRepository(db *gorm.DB, logger *logrus.Logger) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db, logger: newRepoLogger(logger)}
}

func (r *GormSnapshotRepository) Load(q SnapshotQuery) (*Snapshot, error) {
	snap := &Snapshot{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if snap.Jobs, err = jobsBetween(tx, q.JobsFrom, q.JobsTo); err != nil {
			return err
		}
		if snap.Absences, err = absencesBetween(tx, q.AbsenceFrom, q.AbsenceTo); err != nil {
			return err
		}
		if snap.Schedule, err = loadWorkSchedule(tx); err != nil {
			return err
		}
		if snap.Settings, err = loadFormulaSetting(tx); err != nil {
			return err
		}
		if q.Month != "" {
			if snap.Target, err = loadMonthlyTarget(tx, q.Month); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to load calculation snapshot")
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"jobs":     len(snap.Jobs),
		"absences": len(snap.Absences),
		"month":    q.Month,
	}).Debug("Loaded calculation snapshot")
	return snap, nil
}
