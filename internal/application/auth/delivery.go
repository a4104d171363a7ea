package auth

import (
	"context"

	"github.com/baechuer/peoplehub/internal/domain"
)

// DeliveryPolicy decides whether an operation waits for the notifier.
type DeliveryPolicy int

const (
	// Blocking waits for the notifier and hands its error to the caller.
	Blocking DeliveryPolicy = iota
	// FireAndForget delivers in the background and only logs failures.
	FireAndForget
)

const (
	opSignup         = "signup"
	opResendCode     = "resend_verification"
	opForgotPassword = "forgot_password"
)

var deliveryPolicies = map[string]DeliveryPolicy{
	opSignup:         FireAndForget,
	opResendCode:     Blocking,
	opForgotPassword: Blocking,
}

// deliver sends msg according to the policy registered for op.
func (s *Service) deliver(ctx context.Context, op string, msg Message) error {
	if deliveryPolicies[op] == FireAndForget {
		bg := context.WithoutCancel(ctx)
		run := func() {
			if err := s.send(bg, msg); err != nil {
				s.log.Error().Err(err).Str("op", op).Str("kind", string(msg.Kind)).Msg("notification failed")
			}
		}

		s.bgMu.Lock()
		if s.draining {
			s.bgMu.Unlock()
			run()
			return nil
		}
		s.inflight.Add(1)
		s.bgMu.Unlock()

		s.spawn(func() {
			defer s.inflight.Done()
			run()
		})
		return nil
	}

	if err := s.send(ctx, msg); err != nil {
		return domain.ErrNotificationFailed(err)
	}
	return nil
}

func (s *Service) send(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	return s.notifier.Send(ctx, msg)
}
