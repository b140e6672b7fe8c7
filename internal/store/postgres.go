package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"guardian/internal/geo"
	"guardian/internal/models"
	appErr "guardian/pkg/errors"
)

// ResourceRow is the persisted shape of a resource. Telemetry is kept
// as jsonb since any subset of readings may be absent.
type ResourceRow struct {
	ID              string `gorm:"type:varchar(64);primaryKey"`
	Name            string `gorm:"type:varchar(256);index;not null"`
	Description     string `gorm:"type:text"`
	Quantity        int    `gorm:"not null"`
	Unit            string `gorm:"type:varchar(64);not null"`
	Category        string `gorm:"type:varchar(32);index;not null"`
	Status          string `gorm:"type:varchar(32);index;not null"`
	LocationName    string `gorm:"type:varchar(256)"`
	LocationAddress string `gorm:"type:varchar(256)"`
	Lat             *float64
	Lng             *float64
	Organization    string         `gorm:"type:varchar(128);index;not null"`
	QRCode          string         `gorm:"type:varchar(256)"`
	Telemetry       datatypes.JSON `gorm:"type:jsonb"`
	LastUpdated     time.Time      `gorm:"index;not null"`
	CreatedAt       time.Time
}

func (ResourceRow) TableName() string { return "resources" }

// AlertRow is the persisted shape of a system alert.
type AlertRow struct {
	ID          string `gorm:"type:varchar(64);primaryKey"`
	Title       string `gorm:"type:varchar(256);not null"`
	Description string `gorm:"type:text"`
	Severity    string `gorm:"type:varchar(16);index;not null"`
	Category    string `gorm:"type:varchar(32)"`
	ResourceID  string `gorm:"type:varchar(64);index"`
	ActionLink  string `gorm:"type:varchar(256)"`
	ActionText  string `gorm:"type:varchar(128)"`
	Dismissed   bool   `gorm:"index;not null;default:false"`
	Timestamp   time.Time
	CreatedAt   time.Time
}

func (AlertRow) TableName() string { return "alerts" }

func toResourceRow(r *models.Resource) (*ResourceRow, error) {
	row := &ResourceRow{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Quantity:        r.Quantity,
		Unit:            r.Unit,
		Category:        string(r.Category),
		Status:          string(r.Status),
		LocationName:    r.Location.Name,
		LocationAddress: r.Location.Address,
		Organization:    r.Organization,
		QRCode:          r.QRCode,
		LastUpdated:     r.LastUpdated,
	}
	if c := r.Location.Coordinates; c != nil {
		lat, lng := c.Lat, c.Lng
		row.Lat, row.Lng = &lat, &lng
	}
	if r.Telemetry != nil {
		b, err := json.Marshal(r.Telemetry)
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "marshal telemetry failed")
		}
		row.Telemetry = datatypes.JSON(b)
	}
	return row, nil
}

func fromResourceRow(row *ResourceRow) (models.Resource, error) {
	r := models.Resource{
		ID:           row.ID,
		Name:         row.Name,
		Description:  row.Description,
		Quantity:     row.Quantity,
		Unit:         row.Unit,
		Category:     models.Category(row.Category),
		Status:       models.Status(row.Status),
		Location:     models.Location{Name: row.LocationName, Address: row.LocationAddress},
		Organization: row.Organization,
		QRCode:       row.QRCode,
		LastUpdated:  row.LastUpdated,
	}
	if row.Lat != nil && row.Lng != nil {
		r.Location.Coordinates = &geo.Coordinate{Lat: *row.Lat, Lng: *row.Lng}
	}
	if len(row.Telemetry) > 0 {
		var t models.Telemetry
		if err := json.Unmarshal(row.Telemetry, &t); err != nil {
			return r, appErr.Wrap(err, appErr.CodeInternal, "unmarshal telemetry failed")
		}
		r.Telemetry = &t
	}
	return r, nil
}

// PostgresResourceStore is the GORM-backed ResourceStore.
type PostgresResourceStore struct {
	db *gorm.DB
}

func NewPostgresResourceStore(db *gorm.DB) *PostgresResourceStore {
	return &PostgresResourceStore{db: db}
}

func (s *PostgresResourceStore) List(ctx context.Context) ([]models.Resource, error) {
	var rows []ResourceRow
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list resources failed")
	}
	return rowsToResources(rows)
}

func (s *PostgresResourceStore) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	var row ResourceRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "resource not found").WithMeta("id", id)
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get resource failed")
	}
	r, err := fromResourceRow(&row)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PostgresResourceStore) Add(ctx context.Context, r *models.Resource) error {
	if err := r.Validate(); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, "invalid resource")
	}
	r.ID = uuid.NewString()
	r.LastUpdated = time.Now().UTC()
	row, err := toResourceRow(r)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "create resource failed")
	}
	return nil
}

func (s *PostgresResourceStore) Update(ctx context.Context, r *models.Resource) error {
	if err := r.Validate(); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, "invalid resource")
	}
	r.LastUpdated = time.Now().UTC()
	row, err := toResourceRow(r)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&ResourceRow{}).Where("id = ?", r.ID).
		Select("*").Omit("id", "created_at").Updates(row)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "update resource failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "resource not found").WithMeta("id", r.ID)
	}
	return nil
}

func (s *PostgresResourceStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&ResourceRow{}, "id = ?", id)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "delete resource failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "resource not found").WithMeta("id", id)
	}
	return nil
}

func (s *PostgresResourceStore) Filter(ctx context.Context, search string, category models.Category, status models.Status, organization string) ([]models.Resource, error) {
	q := s.db.WithContext(ctx).Model(&ResourceRow{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"name ILIKE ? OR description ILIKE ? OR location_name ILIKE ? OR location_address ILIKE ?",
			like, like, like, like,
		)
	}
	if category != "" {
		q = q.Where("category = ?", string(category))
	}
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	if organization != "" {
		q = q.Where("organization = ?", organization)
	}
	var rows []ResourceRow
	if err := q.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "filter resources failed")
	}
	return rowsToResources(rows)
}

func rowsToResources(rows []ResourceRow) ([]models.Resource, error) {
	out := make([]models.Resource, 0, len(rows))
	for i := range rows {
		r, err := fromResourceRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// PostgresAlertStore is the GORM-backed AlertStore.
type PostgresAlertStore struct {
	db *gorm.DB
}

func NewPostgresAlertStore(db *gorm.DB) *PostgresAlertStore {
	return &PostgresAlertStore{db: db}
}

func (s *PostgresAlertStore) ListAll(ctx context.Context) ([]models.SystemAlert, error) {
	return s.list(ctx, false)
}

func (s *PostgresAlertStore) ListActive(ctx context.Context) ([]models.SystemAlert, error) {
	return s.list(ctx, true)
}

func (s *PostgresAlertStore) list(ctx context.Context, activeOnly bool) ([]models.SystemAlert, error) {
	q := s.db.WithContext(ctx).Model(&AlertRow{})
	if activeOnly {
		q = q.Where("dismissed = false")
	}
	var rows []AlertRow
	if err := q.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list alerts failed")
	}
	out := make([]models.SystemAlert, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.SystemAlert{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
			Severity:    models.Severity(row.Severity),
			Category:    models.Category(row.Category),
			ResourceID:  row.ResourceID,
			ActionLink:  row.ActionLink,
			ActionText:  row.ActionText,
			Dismissed:   row.Dismissed,
			Timestamp:   row.Timestamp,
		})
	}
	return out, nil
}

func (s *PostgresAlertStore) Create(ctx context.Context, a *models.SystemAlert) error {
	if !a.Severity.Valid() {
		return appErr.New(appErr.CodeInvalid, "invalid alert severity").WithMeta("severity", string(a.Severity))
	}
	a.ID = uuid.NewString()
	a.Timestamp = time.Now().UTC()
	row := AlertRow{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Severity:    string(a.Severity),
		Category:    string(a.Category),
		ResourceID:  a.ResourceID,
		ActionLink:  a.ActionLink,
		ActionText:  a.ActionText,
		Timestamp:   a.Timestamp,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "create alert failed")
	}
	return nil
}

func (s *PostgresAlertStore) Dismiss(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&AlertRow{}).Where("id = ?", id).Update("dismissed", true)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "dismiss alert failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "alert not found").WithMeta("id", id)
	}
	return nil
}

func (s *PostgresAlertStore) DismissAll(ctx context.Context) error {
	res := s.db.WithContext(ctx).Model(&AlertRow{}).Where("dismissed = false").Update("dismissed", true)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "dismiss all alerts failed")
	}
	return nil
}

var (
	_ ResourceStore = (*PostgresResourceStore)(nil)
	_ AlertStore    = (*PostgresAlertStore)(nil)
)
