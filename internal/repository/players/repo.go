// Package players reads player aggregates from the relational store.
// It is a read-only source: the search subsystem never writes players,
// it only loads them for projection into the index.
package players

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/fundguard/playersearch/internal/domain"
)

// Repo loads player aggregates with all owned collections eagerly populated.
type Repo struct {
	db *sql.DB
}

// New creates a player reader over an existing connection pool.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Open connects to PostgreSQL via lib/pq and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

const playerColumns = `p.id, p.full_name, p.first_name, p.last_name, p.middle_name,
	p.birth_date, p.contact_info, p.additional_info, p.description,
	p.fund_id, COALESCE(f.name, '')`

// GetByID loads a single player with all owned collections.
// Returns domain.ErrPlayerNotFound when no row exists.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + `
		FROM players p
		LEFT JOIN funds f ON f.id = p.fund_id
		WHERE p.id = $1`

	p, err := scanPlayer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("get player %s: %w", id, err)
	}

	if err := r.loadCollections(ctx, []*domain.Player{p}); err != nil {
		return nil, fmt.Errorf("load player %s collections: %w", id, err)
	}
	return p, nil
}

// ListPage returns up to limit players ordered by id, starting strictly
// after afterID. Pass uuid.Nil for the first page. Collections are loaded
// in batch per page.
func (r *Repo) ListPage(ctx context.Context, afterID uuid.UUID, limit int) ([]*domain.Player, error) {
	query := `SELECT ` + playerColumns + `
		FROM players p
		LEFT JOIN funds f ON f.id = p.fund_id
		WHERE p.id > $1
		ORDER BY p.id
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list players after %s: %w", afterID, err)
	}
	defer rows.Close()

	var page []*domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player row: %w", err)
		}
		page = append(page, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	if err := r.loadCollections(ctx, page); err != nil {
		return nil, fmt.Errorf("load page collections: %w", err)
	}
	return page, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (*domain.Player, error) {
	var (
		p          domain.Player
		first      sql.NullString
		last       sql.NullString
		middle     sql.NullString
		birthDate  sql.NullTime
		contact    sql.NullString
		additional sql.NullString
		desc       sql.NullString
	)
	err := row.Scan(&p.ID, &p.FullName, &first, &last, &middle,
		&birthDate, &contact, &additional, &desc, &p.FundID, &p.FundName)
	if err != nil {
		return nil, err
	}
	p.FirstName = first.String
	p.LastName = last.String
	p.MiddleName = middle.String
	if birthDate.Valid {
		t := birthDate.Time
		p.BirthDate = &t
	}
	p.ContactInfo = contact.String
	p.AdditionalInfo = additional.String
	p.Description = desc.String

	p.Contacts = []domain.Contact{}
	p.Locations = []domain.Location{}
	p.Nicknames = []domain.Nickname{}
	p.PaymentMethods = []domain.PaymentMethod{}
	p.SocialProfiles = []domain.SocialProfile{}
	p.Cases = []domain.CaseRef{}
	return &p, nil
}

// loadCollections fills owned collections for the given players with one
// query per collection, using = ANY on the page's ids.
func (r *Repo) loadCollections(ctx context.Context, players []*domain.Player) error {
	if len(players) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(players))
	byID := make(map[uuid.UUID]*domain.Player, len(players))
	for i, p := range players {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	if err := r.loadContacts(ctx, ids, byID); err != nil {
		return err
	}
	if err := r.loadLocations(ctx, ids, byID); err != nil {
		return err
	}
	if err := r.loadNicknames(ctx, ids, byID); err != nil {
		return err
	}
	if err := r.loadPaymentMethods(ctx, ids, byID); err != nil {
		return err
	}
	if err := r.loadSocialProfiles(ctx, ids, byID); err != nil {
		return err
	}
	return r.loadCases(ctx, ids, byID)
}

func (r *Repo) loadContacts(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.Player) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT player_id, type, value, COALESCE(description, '')
		 FROM player_contacts WHERE player_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load contacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pid uuid.UUID
		var c domain.Contact
		if err := rows.Scan(&pid, &c.Type, &c.Value, &c.Description); err != nil {
			return fmt.Errorf("scan contact: %w", err)
		}
		if p, ok := byID[pid]; ok {
			p.Contacts = append(p.Contacts, c)
		}
	}
	return rows.Err()
}

func (r *Repo) loadLocations(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.Player) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT player_id, country, COALESCE(city, ''), COALESCE(address, '')
		 FROM player_locations WHERE player_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load locations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pid uuid.UUID
		var l domain.Location
		if err := rows.Scan(&pid, &l.Country, &l.City, &l.Address); err != nil {
			return fmt.Errorf("scan location: %w", err)
		}
		if p, ok := byID[pid]; ok {
			p.Locations = append(p.Locations, l)
		}
	}
	return rows.Err()
}

func (r *Repo) loadNicknames(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.Player) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT player_id, nickname, COALESCE(room, ''), COALESCE(discipline, '')
		 FROM player_nicknames WHERE player_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load nicknames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pid uuid.UUID
		var n domain.Nickname
		if err := rows.Scan(&pid, &n.Nickname, &n.Room, &n.Discipline); err != nil {
			return fmt.Errorf("scan nickname: %w", err)
		}
		if p, ok := byID[pid]; ok {
			p.Nicknames = append(p.Nicknames, n)
		}
	}
	return rows.Err()
}

func (r *Repo) loadPaymentMethods(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.Player) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT player_id, type, value
		 FROM player_payment_methods WHERE player_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load payment methods: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pid uuid.UUID
		var m domain.PaymentMethod
		if err := rows.Scan(&pid, &m.Type, &m.Value); err != nil {
			return fmt.Errorf("scan payment method: %w", err)
		}
		if p, ok := byID[pid]; ok {
			p.PaymentMethods = append(p.PaymentMethods, m)
		}
	}
	return rows.Err()
}

func (r *Repo) loadSocialProfiles(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.Player) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT player_id, network, handle
		 FROM player_social_profiles WHERE player_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load social profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pid uuid.UUID
		var s domain.SocialProfile
		if err := rows.Scan(&pid, &s.Network, &s.Handle); err != nil {
			return fmt.Errorf("scan social profile: %w", err)
		}
		if p, ok := byID[pid]; ok {
			p.SocialProfiles = append(p.SocialProfiles, s)
		}
	}
	return rows.Err()
}

func (r *Repo) loadCases(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.Player) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT player_id, id, created_at
		 FROM cases WHERE player_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load cases: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pid uuid.UUID
		var c domain.CaseRef
		if err := rows.Scan(&pid, &c.ID, &c.CreatedAt); err != nil {
			return fmt.Errorf("scan case: %w", err)
		}
		if p, ok := byID[pid]; ok {
			p.Cases = append(p.Cases, c)
		}
	}
	return rows.Err()
}
