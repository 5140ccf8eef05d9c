package repositories

import (
	"CarePoint/cache"
	"CarePoint/models"
	"CarePoint/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	// Available-slot listings age out quickly: the "future only" filter
	// depends on the current time.
	SlotCacheExpiry = time.Minute

	slotCachePattern = "available_slots:*"
)

// SlotRepository manages a doctor's bookable time units. Every timestamp it
// stores is aligned to the configured grid, and the (doctor_id, start_time)
// unique index enforces one slot per doctor per instant even under
// concurrent creation.
type SlotRepository struct {
	db       *gorm.DB
	cache    *cache.Cache
	interval int
	now      func() time.Time
}

func NewSlotRepository(db *gorm.DB, cache *cache.Cache, intervalMinutes int) *SlotRepository {
	return &SlotRepository{db: db, cache: cache, interval: intervalMinutes, now: time.Now}
}

// Create inserts a slot with booked=false at the aligned timestamp. If the
// doctor already has a slot at that instant the existing slot is returned
// unchanged. Timestamps before the current time are rejected.
func (r *SlotRepository) Create(ctx context.Context, doctorID uint, startTime time.Time) (*models.Slot, error) {
	if err := r.checkDoctorExists(ctx, doctorID); err != nil {
		return nil, err
	}

	aligned := utils.AlignToInterval(startTime, r.interval)
	if aligned.Before(r.now()) {
		return nil, ErrPastSlot
	}

	var existing models.Slot
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND start_time = ?", doctorID, aligned).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for existing slot: %w", err)
	}

	slot := models.Slot{DoctorID: doctorID, StartTime: aligned, Booked: false}
	if err := r.db.WithContext(ctx).Create(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent insert for the same instant;
			// the winner's row is the slot we were asked for.
			if err := r.db.WithContext(ctx).
				Where("doctor_id = ? AND start_time = ?", doctorID, aligned).
				First(&existing).Error; err != nil {
				return nil, fmt.Errorf("failed to load slot after duplicate insert: %w", err)
			}
			return &existing, nil
		}
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}

	r.invalidateListings(ctx)
	return &slot, nil
}

// GenerateRange produces the aligned slot sequence from align(start) up to
// but excluding end, stepping by intervalMinutes, and inserts the candidates
// that are neither in the past nor already present. All inserts share one
// transaction. The returned records carry the doctor's name and specialty;
// an empty result is not an error.
func (r *SlotRepository) GenerateRange(ctx context.Context, doctorID uint, start, end time.Time, intervalMinutes int) ([]models.SlotView, error) {
	if intervalMinutes <= 0 {
		intervalMinutes = r.interval
	}

	var created []models.SlotView
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doctor models.Doctor
		if err := tx.First(&doctor, "id = ?", doctorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDoctorNotFound
			}
			return fmt.Errorf("failed to load doctor: %w", err)
		}

		now := r.now()
		step := time.Duration(intervalMinutes) * time.Minute
		for cur := utils.AlignToInterval(start, intervalMinutes); cur.Before(end); cur = cur.Add(step) {
			if cur.Before(now) {
				continue
			}

			var existing models.Slot
			err := tx.Where("doctor_id = ? AND start_time = ?", doctorID, cur).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to check for existing slot: %w", err)
			}

			slot := models.Slot{DoctorID: doctorID, StartTime: cur, Booked: false}
			if err := tx.Create(&slot).Error; err != nil {
				return fmt.Errorf("failed to create slot: %w", err)
			}
			created = append(created, models.SlotView{
				ID:         slot.ID,
				DoctorID:   doctorID,
				StartTime:  cur,
				Booked:     false,
				DoctorName: doctor.Name,
				Specialty:  doctor.Specialty,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(created) > 0 {
		r.invalidateListings(ctx)
	}
	return created, nil
}

// ListAvailable returns unbooked future slots ordered by start time, with
// doctor info denormalized. The specialty filter matches the owning doctor;
// the date filter restricts to one UTC calendar day. Results are
// deduplicated by (doctor, start time) as a defensive measure and cached
// briefly in Redis.
func (r *SlotRepository) ListAvailable(ctx context.Context, specialty, date string) ([]models.SlotView, error) {
	var dayStart, dayEnd time.Time
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, ErrInvalidDateFilter
		}
		dayStart = parsed.UTC()
		dayEnd = dayStart.Add(24 * time.Hour)
	}

	cacheKey := fmt.Sprintf("available_slots:%s:%s", specialty, date)
	if cached, err := r.cache.Get(ctx, cacheKey); err == nil {
		var views []models.SlotView
		if err := json.Unmarshal([]byte(cached), &views); err == nil {
			return views, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get available slots from cache: %v", err)
	}

	query := r.db.WithContext(ctx).Model(&models.Slot{}).
		Select("slots.id, slots.doctor_id, slots.start_time, slots.booked, doctors.name AS doctor_name, doctors.specialty").
		Joins("JOIN doctors ON doctors.id = slots.doctor_id").
		Where("slots.booked = ? AND slots.start_time >= ?", false, r.now())
	if specialty != "" {
		query = query.Where("doctors.specialty = ?", specialty)
	}
	if date != "" {
		query = query.Where("slots.start_time >= ? AND slots.start_time < ?", dayStart, dayEnd)
	}

	var rows []models.SlotView
	if err := query.Order("slots.start_time ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list available slots: %w", err)
	}

	views := dedupeSlots(rows)

	if data, err := json.Marshal(views); err == nil {
		if err := r.cache.Set(ctx, cacheKey, data, SlotCacheExpiry); err != nil {
			log.Printf("Failed to set available slots in cache: %v", err)
		}
	}

	return views, nil
}

// ListByDoctor returns all slots for a doctor, optionally restricted to
// slots at or after the current time.
func (r *SlotRepository) ListByDoctor(ctx context.Context, doctorID uint, onlyFuture bool) ([]models.Slot, error) {
	if err := r.checkDoctorExists(ctx, doctorID); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID)
	if onlyFuture {
		query = query.Where("start_time >= ?", r.now())
	}

	var slots []models.Slot
	if err := query.Order("start_time ASC").Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

// DeleteFutureRange deletes every slot for the doctor between now and now
// plus the given number of days, inclusive, and reports how many rows went.
// Attached appointments go with their slots via the cascade.
func (r *SlotRepository) DeleteFutureRange(ctx context.Context, doctorID uint, days int) (int64, error) {
	if err := r.checkDoctorExists(ctx, doctorID); err != nil {
		return 0, err
	}

	now := r.now()
	until := now.Add(time.Duration(days) * 24 * time.Hour)

	result := r.db.WithContext(ctx).
		Where("doctor_id = ? AND start_time >= ? AND start_time <= ?", doctorID, now, until).
		Delete(&models.Slot{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete slots: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		r.invalidateListings(ctx)
	}
	return result.RowsAffected, nil
}

func (r *SlotRepository) checkDoctorExists(ctx context.Context, doctorID uint) error {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).Select("id").First(&doctor, "id = ?", doctorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDoctorNotFound
		}
		return fmt.Errorf("failed to load doctor: %w", err)
	}
	return nil
}

// invalidateListings drops cached slot listings. Staleness here is a
// display concern only, so failures are logged and swallowed.
func (r *SlotRepository) invalidateListings(ctx context.Context) {
	if err := r.cache.DeleteAll(ctx, slotCachePattern); err != nil {
		log.Printf("Failed to invalidate slot cache: %v", err)
	}
}

func dedupeSlots(rows []models.SlotView) []models.SlotView {
	type slotKey struct {
		doctorID uint
		start    int64
	}
	seen := make(map[slotKey]struct{}, len(rows))
	views := make([]models.SlotView, 0, len(rows))
	for _, row := range rows {
		key := slotKey{row.DoctorID, row.StartTime.UnixNano()}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		views = append(views, row)
	}
	return views
}
