// Package memory keeps accounts in process. It backs database.driver=memory
// for local runs and demos; data is lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/shandysiswandi/otpauth/internal/account/entity"
	"github.com/shandysiswandi/otpauth/internal/pkg/goerror"
)

type Memory struct {
	mu      sync.RWMutex
	byID    map[int64]*entity.Account
	byEmail map[string]int64
}

func New() *Memory {
	return &Memory{
		byID:    make(map[int64]*entity.Account),
		byEmail: make(map[string]int64),
	}
}

func copyAccount(a *entity.Account) *entity.Account {
	c := *a
	if a.OTP != nil {
		code := *a.OTP
		c.OTP = &code
	}
	return &c
}

func (m *Memory) GetAccountByEmail(_ context.Context, email string) (*entity.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	return copyAccount(m.byID[id]), nil
}

func (m *Memory) GetAccountByID(_ context.Context, id int64) (*entity.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.byID[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	return copyAccount(a), nil
}

func (m *Memory) CreateAccount(_ context.Context, in entity.NewAccount) (*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[in.Email]; ok {
		return nil, goerror.ErrConflict
	}
	if _, ok := m.byID[in.ID]; ok {
		return nil, goerror.ErrConflict
	}

	code := in.OTP
	a := &entity.Account{
		ID:        in.ID,
		FullName:  in.FullName,
		Email:     in.Email,
		OTP:       &code,
		CreatedAt: in.CreatedAt,
	}
	m.byID[a.ID] = a
	m.byEmail[a.Email] = a.ID

	return copyAccount(a), nil
}

func (m *Memory) UpdateAccountOTPByEmail(_ context.Context, email, code string) (*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	a := m.byID[id]
	a.OTP = &code

	return copyAccount(a), nil
}

func (m *Memory) ClearAccountOTP(_ context.Context, id int64, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.byID[id]
	if !ok || a.OTP == nil || *a.OTP != code {
		return false, nil
	}
	a.OTP = nil

	return true, nil
}
