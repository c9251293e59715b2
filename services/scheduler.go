// services/scheduler.go
package services

import (
	"log"
	"time"

	"bounty-marketplace-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartDeadlineWatcher logs claimed bounties whose deadline has passed
// without a winner. No state changes: there is no expiry transition in the
// lifecycle, so this is operator visibility only.
func (s *BountyService) StartDeadlineWatcher() {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[DeadlineWatcher] failed to create scheduler: %v", err)
		return
	}
	sched.Start()

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			var bounties []models.Bounty
			now := time.Now()
			err := s.DB.Where("status = ? AND time_limit <= ?", models.BountyStatusClaimed, now).
				Find(&bounties).Error
			if err != nil {
				log.Printf("[DeadlineWatcher] DB error: %v", err)
				return
			}

			for _, b := range bounties {
				hunter := "?"
				if b.Hunter != nil {
					hunter = *b.Hunter
				}
				log.Printf("⏰ Bounty past deadline, still claimed: %q (%s) hunter=%s", b.Title, b.Address, hunter)
			}
		}),
	)
	if err != nil {
		log.Printf("[DeadlineWatcher] failed to register job: %v", err)
	}
}
