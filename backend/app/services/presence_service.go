package services

import (
	"context"
	"strings"
	"time"

	"monitor-hub/backend/app/models"
	"monitor-hub/backend/app/repo"
)

// DeviceReport carries the attributes of a heartbeat. Zero values and nil
// pointers mean "not reported" and leave the stored attribute unchanged.
type DeviceReport struct {
	User     string
	Hostname string
	Platform string
	FreeMem  *float64
	TotalMem *float64
	CPUs     *int
	Location *models.Location
	City     string
	Meta     map[string]any
}

// PresenceService keeps the online/offline state of devices. Every write is
// a single statement keyed by user, so concurrent reports for the same user
// cannot create duplicates.
type PresenceService struct {
	devices *repo.DeviceRepository
	now     func() time.Time
}

func NewPresenceService(devices *repo.DeviceRepository, now func() time.Time) *PresenceService {
	if now == nil {
		now = time.Now
	}
	return &PresenceService{devices: devices, now: now}
}

// Touch upserts the device of r.User, marking it online and seen now.
func (s *PresenceService) Touch(ctx context.Context, r DeviceReport) (*models.Device, error) {
	if strings.TrimSpace(r.User) == "" {
		return nil, invalid("user is required")
	}
	now := s.now().UTC()
	d := &models.Device{
		User:      r.User,
		Hostname:  r.Hostname,
		Platform:  r.Platform,
		FreeMem:   r.FreeMem,
		TotalMem:  r.TotalMem,
		CPUs:      r.CPUs,
		Online:    true,
		LastSeen:  now,
		Location:  r.Location,
		City:      r.City,
		Meta:      r.Meta,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if d.City == "" && d.Location != nil {
		d.City = d.Location.City
	}

	columns := []string{"online", "last_seen", "updated_at"}
	if d.Hostname != "" {
		columns = append(columns, "hostname")
	}
	if d.Platform != "" {
		columns = append(columns, "platform")
	}
	if d.FreeMem != nil {
		columns = append(columns, "free_mem")
	}
	if d.TotalMem != nil {
		columns = append(columns, "total_mem")
	}
	if d.CPUs != nil {
		columns = append(columns, "cpus")
	}
	if d.Location != nil {
		columns = append(columns, "location")
	}
	if d.City != "" {
		columns = append(columns, "city")
	}
	if len(d.Meta) > 0 {
		columns = append(columns, "meta")
	}

	if err := s.devices.Upsert(ctx, d, columns); err != nil {
		return nil, storageErr("upsert device", err)
	}
	return s.find(ctx, r.User)
}

// TouchExisting refreshes presence for a device that already exists and
// reports whether one did. Activity reports use it; they never register
// devices.
func (s *PresenceService) TouchExisting(ctx context.Context, user string) (bool, error) {
	if user == "" {
		return false, nil
	}
	n, err := s.devices.SetOnline(ctx, user, true, s.now().UTC())
	if err != nil {
		return false, storageErr("touch device", err)
	}
	if n > 0 {
		return true, nil
	}
	d, err := s.devices.FindByUser(ctx, user)
	if err != nil {
		return false, storageErr("find device", err)
	}
	return d != nil, nil
}

// SetStatus applies an explicit status report. Unknown users yield
// ErrNotFound and no record is created.
func (s *PresenceService) SetStatus(ctx context.Context, user string, online bool) (*models.Device, error) {
	if strings.TrimSpace(user) == "" {
		return nil, invalid("user is required")
	}
	// The affected-row count is not used: some drivers count only changed
	// rows, so a repeated report would look like a missing device.
	if _, err := s.devices.SetOnline(ctx, user, online, s.now().UTC()); err != nil {
		return nil, storageErr("set status", err)
	}
	return s.find(ctx, user)
}

// Sweep marks offline every online device last seen more than threshold
// before now and returns how many changed. Offline devices are never touched.
func (s *PresenceService) Sweep(ctx context.Context, now time.Time, threshold time.Duration) (int64, error) {
	n, err := s.devices.MarkStale(ctx, now.UTC().Add(-threshold))
	if err != nil {
		return 0, storageErr("sweep", err)
	}
	return n, nil
}

func (s *PresenceService) List(ctx context.Context, city string) ([]models.Device, error) {
	devices, err := s.devices.List(ctx, city)
	if err != nil {
		return nil, storageErr("list devices", err)
	}
	return devices, nil
}

func (s *PresenceService) find(ctx context.Context, user string) (*models.Device, error) {
	d, err := s.devices.FindByUser(ctx, user)
	if err != nil {
		return nil, storageErr("find device", err)
	}
	if d == nil {
		return nil, ErrNotFound
	}
	return d, nil
}
