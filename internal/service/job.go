package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"aw-tracker-bot/internal/models"
	"aw-tracker-bot/internal/performance"
	"aw-tracker-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

type JobInput struct {
	WIPNumber  string
	VehicleReg string
	AW         float64
	VHC        performance.VHCStatus
	Notes      string
}

type JobService struct {
	repo   repository.JobRepository
	loc    *time.Location
	now    Clock
	logger *logrus.Logger
}

func NewJobService(repo repository.JobRepository, loc *time.Location, now Clock, logger *logrus.Logger) *JobService {
	if now == nil {
		now = time.Now
	}
	return &JobService{repo: repo, loc: loc, now: now, logger: newServiceLogger(logger)}
}

func (in JobInput) validate() error {
	if in.WIPNumber == "" {
		return errors.New("WIP number is required")
	}
	if in.VehicleReg == "" {
		return errors.New("vehicle registration is required")
	}
	return performance.Job{AW: in.AW}.Validate()
}

func (s *JobService) AddJob(in JobInput) (*models.Job, error) {
	if err := in.validate(); err != nil {
		s.logger.WithError(err).Warn("Invalid job data")
		return nil, err
	}

	job := &models.Job{
		WIPNumber:  in.WIPNumber,
		VehicleReg: strings.ToUpper(in.VehicleReg),
		AW:         in.AW,
		VHCStatus:  string(vhcOrNone(in.VHC)),
		Notes:      in.Notes,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Create(job); err != nil {
		return nil, err
	}
	return job, nil
}

// UpdateJob replaces the editable fields; CreatedAt is kept.
func (s *JobService) UpdateJob(id uint, in JobInput) (*models.Job, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	job, err := s.GetJob(id)
	if err != nil {
		return nil, err
	}
	job.WIPNumber = in.WIPNumber
	job.VehicleReg = strings.ToUpper(in.VehicleReg)
	job.AW = in.AW
	job.VHCStatus = string(vhcOrNone(in.VHC))
	job.Notes = in.Notes

	if err := s.repo.Update(job); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *JobService) DeleteJob(id uint) error {
	err := s.repo.Delete(id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrJobNotFound
	}
	return err
}

func (s *JobService) GetJob(id uint) (*models.Job, error) {
	job, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

func (s *JobService) RecentJobs(limit int) ([]models.Job, error) {
	return s.repo.GetRecent(limit)
}

func (s *JobService) TodayJobs() ([]models.Job, error) {
	today := s.now().In(s.loc)
	from, to := dayBounds(today, today, s.loc)
	return s.repo.GetBetween(from, to)
}

func vhcOrNone(v performance.VHCStatus) performance.VHCStatus {
	if v == "" {
		return performance.VHCNone
	}
	return v
}

// ParseJobArgs parses "WIP REG AW [VHC] [notes...]". The fourth token is
// taken as a VHC status only when it names one.
func ParseJobArgs(args string) (JobInput, error) {
	parts := strings.Fields(args)
	if len(parts) < 3 {
		return JobInput{}, errors.New("usage: /job <WIP> <REG> <AW> [green|amber|red] [notes]")
	}

	aw, err := strconv.ParseFloat(strings.ReplaceAll(parts[2], ",", "."), 64)
	if err != nil {
		return JobInput{}, fmt.Errorf("AW must be a number, got %q", parts[2])
	}

	in := JobInput{WIPNumber: parts[0], VehicleReg: parts[1], AW: aw, VHC: performance.VHCNone}
	rest := parts[3:]
	if len(rest) > 0 {
		if vhc, err := performance.ParseVHC(rest[0]); err == nil {
			in.VHC = vhc
			rest = rest[1:]
		}
	}
	in.Notes = strings.Join(rest, " ")
	return in, in.validate()
}

var vhcIcons = map[performance.VHCStatus]string{
	performance.VHCNone:  "⚪",
	performance.VHCGreen: "🟢",
	performance.VHCAmber: "🟠",
	performance.VHCRed:   "🔴",
}

func (s *JobService) FormatJob(job *models.Job, conv performance.Converter) string {
	vhc, _ := performance.ParseVHC(job.VHCStatus)
	text := fmt.Sprintf(
		`🔧 Job #%d

📄 WIP: %s
🚗 Reg: %s
⏱ AW: %g (%.2fh)
%s VHC: %s
📅 Logged: %s`,
		job.ID,
		job.WIPNumber,
		job.VehicleReg,
		job.AW, performance.Round2(conv.AWToHours(job.AW)),
		vhcIcons[vhc], vhc,
		job.CreatedAt.In(s.loc).Format("02.01.2006 15:04"),
	)
	if job.Notes != "" {
		text += "\n📝 " + job.Notes
	}
	return text
}

func (s *JobService) FormatJobList(jobs []models.Job, conv performance.Converter) string {
	if len(jobs) == 0 {
		return "📭 No jobs logged yet"
	}

	var b strings.Builder
	b.WriteString("📋 Recent jobs:\n\n")
	for _, job := range jobs {
		vhc, _ := performance.ParseVHC(job.VHCStatus)
		fmt.Fprintf(&b, "#%d %s %s %s - %g AW (%.2fh) %s\n",
			job.ID,
			job.CreatedAt.In(s.loc).Format("02.01 15:04"),
			job.WIPNumber,
			job.VehicleReg,
			job.AW,
			performance.Round2(conv.AWToHours(job.AW)),
			vhcIcons[vhc],
		)
	}
	return b.String()
}
