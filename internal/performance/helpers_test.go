package performance

import "time"

func ptr[T any](v T) *T { return &v }

func date(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// marchJobs returns 40 jobs worth 420 AW (35 sold hours) spread over the
// working days of March 2024.
func marchJobs() []Job {
	days := WorkingDaysInMonth(2024, time.March, DefaultSchedule())
	jobs := make([]Job, 0, 40)
	for i := 0; i < 40; i++ {
		aw := 10.0
		if i%2 == 1 {
			aw = 11
		}
		jobs = append(jobs, Job{
			ID:        uint(i + 1),
			WIPNumber: "WIP" + string(rune('A'+i%26)),
			AW:        aw,
			CreatedAt: days[i%len(days)].Add(9 * time.Hour),
		})
	}
	return jobs
}
