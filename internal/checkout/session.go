package checkout

import (
	"sync"

	"github.com/buyfrescapp/frescapp-backend/pkg/enums"
	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
)

// sessions tracks the checkout phase per user. The flow is strictly linear:
// idle -> submitting -> success -> closed, with a failed submission dropping
// back to idle. Closing resets the user to idle so a new checkout can start.
type sessions struct {
	mu     sync.Mutex
	phases map[string]enums.CheckoutPhase
}

func newSessions() *sessions {
	return &sessions{phases: make(map[string]enums.CheckoutPhase)}
}

func (s *sessions) phase(userID string) enums.CheckoutPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if phase, ok := s.phases[userID]; ok {
		return phase
	}
	return enums.CheckoutPhaseIdle
}

// beginSubmit moves the user into the submitting phase. Only one submission
// may be in flight per user, and a finished session must be closed before a
// new one starts.
func (s *sessions) beginSubmit(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.phases[userID] {
	case enums.CheckoutPhaseSubmitting:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already in progress")
	case enums.CheckoutPhaseSuccess:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "previous checkout not closed yet")
	}
	s.phases[userID] = enums.CheckoutPhaseSubmitting
	return nil
}

func (s *sessions) finishSubmit(userID string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.phases[userID] = enums.CheckoutPhaseSuccess
		return
	}
	s.phases[userID] = enums.CheckoutPhaseIdle
}

// close acknowledges a successful checkout. A closed session behaves like
// idle for the next submission.
func (s *sessions) close(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phases[userID] != enums.CheckoutPhaseSuccess {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "no completed checkout to close")
	}
	s.phases[userID] = enums.CheckoutPhaseClosed
	return nil
}
