package sheets

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/botivate-in/protrackgo/internal/aggregate"
	"github.com/botivate-in/protrackgo/internal/database"
	"github.com/botivate-in/protrackgo/internal/models"
	sheetcodec "github.com/botivate-in/protrackgo/internal/sheets"
	"gorm.io/gorm/clause"
)

// Notifier receives a push event after a sync pass changes local
// state. The websocket hub implements it; a nil notifier is fine.
type Notifier interface {
	Broadcast(event string)
}

// SyncService orchestrates synchronization between the workbook and
// the local cache
type SyncService struct {
	client   *Client
	db       *database.DB
	cfg      Config
	notifier Notifier
	stop     chan struct{}

	mu      sync.RWMutex
	masters map[string][]string
}

// Config holds gateway connection settings
type Config struct {
	URL          string
	FolderID     string
	SyncInterval time.Duration
	Disabled     bool
}

// Dropdown fallbacks used when the Master sheet is unreachable or the
// column is missing. The names mirror the ones on the paper forms the
// sheets replaced.
var (
	DefaultSupervisors = []string{
		"Rahul Kumar", "Amit Singh", "Sunil Verma", "Suresh Das", "Rajesh Kumar",
	}
	DefaultRawMaterials = []string{
		"Raw Stone", "Fuel", "Lubricants", "Coolant", "Misc",
	}
)

// NewSyncService creates a new synchronization service
func NewSyncService(db *database.DB, cfg Config, notifier Notifier) *SyncService {
	return &SyncService{
		client:   NewClient(cfg.URL, cfg.FolderID),
		db:       db,
		cfg:      cfg,
		notifier: notifier,
		stop:     make(chan struct{}),
		masters:  make(map[string][]string),
	}
}

// Client exposes the underlying gateway client so handlers can mirror
// their writes through the same connection.
func (s *SyncService) Client() *Client {
	return s.client
}

// Start begins the background synchronization loop
func (s *SyncService) Start() {
	if s.cfg.Disabled {
		log.Println("Sheets Sync disabled: SHEETS_SYNC_DISABLED is set")
		return
	}

	go func() {
		log.Println("📡 Sheets Sync Service started")

		// Initial sync delay
		time.Sleep(2 * time.Second)
		s.runFullSync()

		interval := s.cfg.SyncInterval
		if interval <= 0 {
			interval = time.Minute
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runFullSync()
			case <-s.stop:
				log.Println("🛑 Sheets Sync Service stopped")
				return
			}
		}
	}()
}

// Stop halts the service
func (s *SyncService) Stop() {
	close(s.stop)
}

// runFullSync pulls every sheet, recomputes the derived totals and
// upserts the results into the local cache
func (s *SyncService) runFullSync() {
	log.Println("🔄 Sheets: Starting full sync...")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	orders, okOrders := s.fetchOrders(ctx)
	cards, okCards := s.fetchJobCards(ctx)
	entries, okEntries := s.fetchActuals(ctx)

	// Totals only recompute when all three inputs arrived; a partial
	// pull would zero out the totals of the missing dataset.
	allFetched := okOrders && okCards && okEntries
	if allFetched {
		aggregate.Recompute(orders, cards, entries)
	}

	if okOrders {
		s.saveOrders(orders)
	}
	if okCards {
		s.saveJobCards(cards)
	}
	if okEntries {
		s.saveActuals(entries)
	}

	// After a partial pull the fresh rows carry no derived fields;
	// rerun the aggregation over the cache so statuses stay stamped.
	if !allFetched && (okOrders || okCards || okEntries) {
		s.recomputeFromCache()
	}

	s.syncCrushing(ctx)
	s.syncUsers(ctx)
	s.syncMasters(ctx)

	if s.notifier != nil {
		s.notifier.Broadcast("sync")
	}
	log.Println("✅ Sheets: Full sync completed")
}

// RefreshSheet re-pulls one sheet right after a handler wrote to it,
// so the caller's next read sees its own write without waiting for
// the ticker.
func (s *SyncService) RefreshSheet(ctx context.Context, sheet string) {
	switch sheet {
	case sheetcodec.SheetProduction:
		if orders, ok := s.fetchOrders(ctx); ok {
			s.saveOrders(orders)
		}
	case sheetcodec.SheetJobCard:
		if cards, ok := s.fetchJobCards(ctx); ok {
			s.saveJobCards(cards)
		}
	case sheetcodec.SheetActual:
		if entries, ok := s.fetchActuals(ctx); ok {
			s.saveActuals(entries)
		}
	case sheetcodec.SheetCrushing:
		s.syncCrushing(ctx)
	case sheetcodec.SheetUsers:
		s.syncUsers(ctx)
	}

	s.recomputeFromCache()
	if s.notifier != nil {
		s.notifier.Broadcast("refresh:" + sheet)
	}
}

// recomputeFromCache reruns the aggregation over whatever the local
// cache holds and persists the derived fields.
func (s *SyncService) recomputeFromCache() {
	var orders []models.ProductionOrder
	var cards []models.JobCard
	var entries []models.ActualEntry

	if err := s.db.Find(&orders).Error; err != nil {
		log.Printf("❌ Sheets: loading orders for recompute: %v", err)
		return
	}
	if err := s.db.Find(&cards).Error; err != nil {
		log.Printf("❌ Sheets: loading job cards for recompute: %v", err)
		return
	}
	if err := s.db.Find(&entries).Error; err != nil {
		log.Printf("❌ Sheets: loading entries for recompute: %v", err)
		return
	}

	aggregate.Recompute(orders, cards, entries)

	if len(orders) > 0 {
		if err := s.db.Save(&orders).Error; err != nil {
			log.Printf("❌ Sheets: saving recomputed orders: %v", err)
		}
	}
	if len(cards) > 0 {
		if err := s.db.Save(&cards).Error; err != nil {
			log.Printf("❌ Sheets: saving recomputed job cards: %v", err)
		}
	}
}

func (s *SyncService) fetchOrders(ctx context.Context) ([]models.ProductionOrder, bool) {
	log.Println("📋 Sheets: Syncing Semi Production...")
	rows, err := s.client.FetchRows(ctx, sheetcodec.SheetProduction)
	if err != nil {
		log.Printf("❌ Sheets Sync Error (Semi Production): %v", err)
		return nil, false
	}
	return sheetcodec.DecodeProductionRows(rows), true
}

func (s *SyncService) fetchJobCards(ctx context.Context) ([]models.JobCard, bool) {
	log.Println("🗂️ Sheets: Syncing Semi Job Card...")
	rows, err := s.client.FetchRows(ctx, sheetcodec.SheetJobCard)
	if err != nil {
		log.Printf("❌ Sheets Sync Error (Semi Job Card): %v", err)
		return nil, false
	}
	return sheetcodec.DecodeJobCardRows(rows), true
}

func (s *SyncService) fetchActuals(ctx context.Context) ([]models.ActualEntry, bool) {
	log.Println("🏭 Sheets: Syncing Semi Actual...")
	rows, err := s.client.FetchRows(ctx, sheetcodec.SheetActual)
	if err != nil {
		log.Printf("❌ Sheets Sync Error (Semi Actual): %v", err)
		return nil, false
	}
	schema := sheetcodec.Resolve(rows, sheetcodec.StageMarkers,
		sheetcodec.MarkerScanRows, sheetcodec.FallbackActualStart)
	return sheetcodec.DecodeActualRows(rows, schema), true
}

func (s *SyncService) saveOrders(orders []models.ProductionOrder) {
	count := 0
	serials := make([]string, 0, len(orders))
	for _, o := range orders {
		o.LastSyncedAt = time.Now()
		serials = append(serials, o.Serial)

		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "serial"}},
			UpdateAll: true,
		}).Create(&o).Error; err != nil {
			log.Printf("Failed to save order %s: %v", o.Serial, err)
		} else {
			count++
		}
	}
	s.pruneBySerial(&models.ProductionOrder{}, serials)
	log.Printf("✅ Sheets: Updated %d orders", count)
}

func (s *SyncService) saveJobCards(cards []models.JobCard) {
	count := 0
	serials := make([]string, 0, len(cards))
	for _, c := range cards {
		c.LastSyncedAt = time.Now()
		serials = append(serials, c.Serial)

		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "serial"}},
			UpdateAll: true,
		}).Create(&c).Error; err != nil {
			log.Printf("Failed to save job card %s: %v", c.Serial, err)
		} else {
			count++
		}
	}
	s.pruneBySerial(&models.JobCard{}, serials)
	log.Printf("✅ Sheets: Updated %d job cards", count)
}

func (s *SyncService) saveActuals(entries []models.ActualEntry) {
	count := 0
	serials := make([]string, 0, len(entries))
	for _, e := range entries {
		e.LastSyncedAt = time.Now()
		serials = append(serials, e.Serial)

		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "serial"}},
			UpdateAll: true,
		}).Create(&e).Error; err != nil {
			log.Printf("Failed to save actual entry %s: %v", e.Serial, err)
		} else {
			count++
		}
	}
	s.pruneBySerial(&models.ActualEntry{}, serials)
	log.Printf("✅ Sheets: Updated %d actual entries", count)
}

// pruneBySerial drops cached rows whose serial vanished from the
// sheet, so hand-deleted rows stop counting toward the totals.
func (s *SyncService) pruneBySerial(model interface{}, serials []string) {
	if len(serials) == 0 {
		return
	}
	if err := s.db.Where("serial NOT IN ?", serials).Delete(model).Error; err != nil {
		log.Printf("Failed to prune stale rows: %v", err)
	}
}

// syncCrushing upserts by sheet row index. The source serial is local
// bookkeeping written at submit time, so the upsert must not touch it.
func (s *SyncService) syncCrushing(ctx context.Context) {
	log.Println("🪨 Sheets: Syncing Crushing_actual...")
	rows, err := s.client.FetchRows(ctx, sheetcodec.SheetCrushing)
	if err != nil {
		log.Printf("❌ Sheets Sync Error (Crushing_actual): %v", err)
		return
	}

	count := 0
	for _, e := range sheetcodec.DecodeCrushingRows(rows) {
		e.LastSyncedAt = time.Now()

		if err := s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "row_index"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"timestamp", "entry_date", "production_date", "product_name",
				"input_qty", "finished_goods", "start_photo_url", "end_photo_url",
				"remarks", "machine_hours", "last_synced_at",
			}),
		}).Create(&e).Error; err != nil {
			log.Printf("Failed to save crushing row %d: %v", e.RowIndex, err)
		} else {
			count++
		}
	}
	log.Printf("✅ Sheets: Updated %d crushing entries", count)
}

// syncUsers mirrors the USER sheet accounts
func (s *SyncService) syncUsers(ctx context.Context) {
	log.Println("👥 Sheets: Syncing USER...")
	rows, err := s.client.FetchRows(ctx, sheetcodec.SheetUsers)
	if err != nil {
		log.Printf("❌ Sheets Sync Error (USER): %v", err)
		return
	}

	count := 0
	for _, u := range sheetcodec.DecodeUserRows(rows) {
		u.LastSyncedAt = time.Now()

		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			UpdateAll: true,
		}).Create(&u).Error; err != nil {
			log.Printf("Failed to save sheet user %s: %v", u.Username, err)
		} else {
			count++
		}
	}
	log.Printf("✅ Sheets: Updated %d sheet users", count)
}

// syncMasters refreshes the in-memory dropdown lists
func (s *SyncService) syncMasters(ctx context.Context) {
	log.Println("📒 Sheets: Syncing Master lists...")

	masterRows, err := s.client.FetchRows(ctx, sheetcodec.SheetMaster)
	if err != nil {
		log.Printf("❌ Sheets Sync Error (Master): %v", err)
		return
	}

	s.mu.Lock()
	s.masters["products"] = sheetcodec.DecodeMasterColumn(masterRows, "Product Name")
	s.masters["supervisors"] = sheetcodec.DecodeMasterColumn(masterRows, "Supervisor Name")
	s.masters["rawMaterials"] = sheetcodec.DecodeMasterColumn(masterRows, "Raw Material")
	s.mu.Unlock()

	itemRows, err := s.client.FetchRows(ctx, sheetcodec.SheetCrushingItems)
	if err != nil {
		log.Printf("❌ Sheets Sync Error (Crusing Items Name): %v", err)
		return
	}

	s.mu.Lock()
	s.masters["crushingItems"] = sheetcodec.DecodeCrushingItems(itemRows)
	s.mu.Unlock()
}

// Products returns the product dropdown list.
func (s *SyncService) Products() []string {
	return s.master("products", nil)
}

// Supervisors returns the supervisor dropdown list.
func (s *SyncService) Supervisors() []string {
	return s.master("supervisors", DefaultSupervisors)
}

// RawMaterials returns the raw material dropdown list.
func (s *SyncService) RawMaterials() []string {
	return s.master("rawMaterials", DefaultRawMaterials)
}

// CrushingItems returns the crushing item dropdown list.
func (s *SyncService) CrushingItems() []string {
	return s.master("crushingItems", nil)
}

func (s *SyncService) master(key string, fallback []string) []string {
	s.mu.RLock()
	list := s.masters[key]
	s.mu.RUnlock()
	if len(list) == 0 {
		return fallback
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}
