// Package memory implementa los puertos de persistencia en memoria, con transacciones
// simuladas por instantánea + restauración. Se usa en desarrollo (STORE_DRIVER=memory) y en tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/relief-inventory-api/internal/application/inventory"
	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store estado compartido del almacenamiento en memoria.
// Una transacción (Run) toma el lock exclusivo completo, lo que equivale a bloquear
// todas las filas que toca: las transacciones concurrentes se serializan.
type Store struct {
	mu sync.RWMutex
	st state
}

type state struct {
	categories map[string]*entity.Category
	items      map[string]*entity.Item
	movements  []*entity.StockMovement // orden de inserción (cronológico)
	users      map[string]*entity.User
}

// NewStore construye un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: state{
		categories: make(map[string]*entity.Category),
		items:      make(map[string]*entity.Item),
		users:      make(map[string]*entity.User),
	}}
}

// Run ejecuta fn con repositorios atados a la transacción. Si fn falla o entra en pánico
// se restaura la instantánea; el pánico se propaga.
func (s *Store) Run(ctx context.Context, fn func(
	categoryRepo repository.CategoryRepository,
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snap := s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			s.st = snap
			panic(p)
		}
	}()
	if err := fn(&CategoryRepo{s: s, inTx: true}, &ItemRepo{s: s, inTx: true}, &MovementRepo{s: s, inTx: true}); err != nil {
		s.st = snap
		return err
	}
	return nil
}

// Repositorios fuera de transacción (cada llamada toma su propio lock).

func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }
func (s *Store) Items() *ItemRepo          { return &ItemRepo{s: s} }
func (s *Store) Movements() *MovementRepo  { return &MovementRepo{s: s} }
func (s *Store) Users() *UserRepo          { return &UserRepo{s: s} }
func (s *Store) Reports() *ReportRepo      { return &ReportRepo{s: s} }

// AddUser registra un usuario del componente de identidad (solo para atribución).
func (s *Store) AddUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.users[u.ID] = &u
}

func (s *Store) read(inTx bool, f func(st *state) error) error {
	if !inTx {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	return f(&s.st)
}

func (s *Store) write(inTx bool, f func(st *state) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return f(&s.st)
}

func (st *state) clone() state {
	out := state{
		categories: make(map[string]*entity.Category, len(st.categories)),
		items:      make(map[string]*entity.Item, len(st.items)),
		movements:  append([]*entity.StockMovement(nil), st.movements...),
		users:      make(map[string]*entity.User, len(st.users)),
	}
	for k, v := range st.categories {
		c := *v
		out.categories[k] = &c
	}
	for k, v := range st.items {
		i := *v
		out.items[k] = &i
	}
	for k, v := range st.users {
		u := *v
		out.users[k] = &u
	}
	return out
}
