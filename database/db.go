package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// ─── Models ──────────────────────────────────────────────────────────────────

type Search struct {
	ID           string    `json:"id"`
	DepartureID  string    `json:"departure_id"`
	ArrivalID    string    `json:"arrival_id"`
	OutboundDate string    `json:"outbound_date"`
	ReturnDate   string    `json:"return_date"`
	Adults       int       `json:"adults"`
	Children     int       `json:"children"`
	ResultsJSON  string    `json:"results_json"`
	CreatedAt    time.Time `json:"created_at"`
}

type Itinerary struct {
	ID           string    `json:"id"`
	SearchID     string    `json:"search_id"`
	TravelerName string    `json:"traveler_name"`
	PDFData      []byte    `json:"pdf_data,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ─── Store ────────────────────────────────────────────────────────────────────

// Store is the optional Postgres search-history store.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres, waits for it to become reachable and runs
// the migrations.
func Open(databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// the database may take a moment to accept connections on a fresh deploy
	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		log.Printf("waiting for database... attempt %d/10: %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		db.Close()
		return nil, err
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id            TEXT PRIMARY KEY,
			departure_id  TEXT NOT NULL,
			arrival_id    TEXT NOT NULL,
			outbound_date TEXT NOT NULL,
			return_date   TEXT,
			adults        INTEGER DEFAULT 1,
			children      INTEGER DEFAULT 0,
			results_json  TEXT,
			created_at    TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS itineraries (
			id            TEXT PRIMARY KEY,
			search_id     TEXT NOT NULL REFERENCES searches(id),
			traveler_name TEXT,
			pdf_data      BYTEA,
			created_at    TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_itineraries_search_id
			ON itineraries(search_id)`,

		`CREATE INDEX IF NOT EXISTS idx_searches_created_at
			ON searches(created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// ─── CRUD ─────────────────────────────────────────────────────────────────────

func (s *Store) SaveSearch(search *Search) error {
	_, err := s.db.Exec(`
		INSERT INTO searches (id, departure_id, arrival_id, outbound_date, return_date, adults, children, results_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		search.ID, search.DepartureID, search.ArrivalID, search.OutboundDate,
		search.ReturnDate, search.Adults, search.Children, search.ResultsJSON)
	return err
}

func (s *Store) GetSearch(id string) (*Search, error) {
	search := &Search{}
	err := s.db.QueryRow(`
		SELECT id, departure_id, arrival_id, outbound_date, return_date, adults, children, results_json, created_at
		FROM searches WHERE id = $1`, id).
		Scan(&search.ID, &search.DepartureID, &search.ArrivalID, &search.OutboundDate,
			&search.ReturnDate, &search.Adults, &search.Children, &search.ResultsJSON, &search.CreatedAt)
	if err != nil {
		return nil, err
	}
	return search, nil
}

func (s *Store) SaveItinerary(itin *Itinerary) error {
	_, err := s.db.Exec(`
		INSERT INTO itineraries (id, search_id, traveler_name, pdf_data)
		VALUES ($1, $2, $3, $4)`,
		itin.ID, itin.SearchID, itin.TravelerName, itin.PDFData)
	return err
}

func (s *Store) GetItinerary(id string) (*Itinerary, error) {
	itin := &Itinerary{}
	err := s.db.QueryRow(`
		SELECT id, search_id, traveler_name, pdf_data, created_at
		FROM itineraries WHERE id = $1`, id).
		Scan(&itin.ID, &itin.SearchID, &itin.TravelerName, &itin.PDFData, &itin.CreatedAt)
	if err != nil {
		return nil, err
	}
	return itin, nil
}
