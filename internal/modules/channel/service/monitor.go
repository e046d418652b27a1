package service

import (
	"time"

	"github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
)

// Start begins the monitoring loop. It returns immediately.
func (s *Service) Start() {
	s.wg.Add(1)
	go s.monitorLoop()
}

// Stop stops monitoring and waits for running checks.
func (s *Service) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Service) monitorLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Duration(s.cfg.UpdateInterval) * time.Second)
	defer ticker.Stop()

	s.CheckChannels()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.CheckChannels()
		}
	}
}

// CheckChannels marks idle channels inactive and syncs channels whose
// sync frequency has elapsed.
func (s *Service) CheckChannels() {
	channels, err := s.repo.GetAllChannels()
	if err != nil {
		s.logger.Error("Failed to load channels", "error", err)
		return
	}

	now := s.now()
	idleLimit := s.cfg.InactiveAfter()

	for _, ch := range channels {
		if ch.Status != domain.StatusActive {
			continue
		}

		if idleLimit > 0 && now.Sub(ch.LastActivity) > idleLimit {
			if _, err := s.repo.UpdateChannel(ch.ID, func(c *domain.Channel) error {
				if c.Status == domain.StatusActive {
					c.Status = domain.StatusInactive
				}
				return nil
			}); err != nil {
				s.logger.Error("Failed to mark channel inactive", "channel_id", ch.ID, "error", err)
				continue
			}
			s.logger.Info("Channel marked inactive", "channel_id", ch.ID, "last_activity", ch.LastActivity)
			continue
		}

		if interval := ch.SyncInterval(); interval > 0 && now.Sub(ch.LastSync) >= interval {
			if _, err := s.syncMessages(s.ctx, ch.ID, false); err != nil && !errors.IsConflict(err) {
				s.logger.Error("Scheduled sync failed", "channel_id", ch.ID, "error", err)
			}
		}
	}
}
