package repository

import (
	"context"
	"encoding/json"
	"time"

	"flexspaces/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	Name            string    `gorm:"column:name"`
	Capacity        int       `gorm:"column:capacity"`
	Status          string    `gorm:"column:status"`
	PricePerSession float64   `gorm:"column:price_per_session"`
	Amenities       string    `gorm:"column:amenities"` // JSON-encoded []string
	IsActive        bool      `gorm:"column:is_active"`
	CreatedBy       *int64    `gorm:"column:created_by"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

type roomImageModel struct {
	ID           int64  `gorm:"column:id;primaryKey"`
	RoomID       int64  `gorm:"column:room_id;index"`
	Filename     string `gorm:"column:filename"`
	OriginalName string `gorm:"column:original_name"`
	Mimetype     string `gorm:"column:mimetype"`
	Size         int64  `gorm:"column:size"`
}

func (roomImageModel) TableName() string { return "room_images" }

// roomTimeSlotModel is the link table behind Room.TimeSlotIDs.
type roomTimeSlotModel struct {
	RoomID     int64 `gorm:"column:room_id;primaryKey"`
	TimeSlotID int64 `gorm:"column:time_slot_id;primaryKey"`
}

func (roomTimeSlotModel) TableName() string { return "room_time_slots" }

func toDomainRoom(m roomModel, images []roomImageModel, slotIDs []int64) *domain.Room {
	var amenities []string
	if m.Amenities != "" {
		_ = json.Unmarshal([]byte(m.Amenities), &amenities)
	}

	imgs := make([]domain.RoomImage, 0, len(images))
	for _, im := range images {
		imgs = append(imgs, domain.RoomImage{
			ID:           im.ID,
			RoomID:       im.RoomID,
			Filename:     im.Filename,
			OriginalName: im.OriginalName,
			Mimetype:     im.Mimetype,
			Size:         im.Size,
		})
	}

	var createdBy int64
	if m.CreatedBy != nil {
		createdBy = *m.CreatedBy
	}

	return &domain.Room{
		ID:              m.ID,
		Name:            m.Name,
		Capacity:        m.Capacity,
		Status:          domain.RoomStatus(m.Status),
		PricePerSession: m.PricePerSession,
		Amenities:       amenities,
		Images:          imgs,
		TimeSlotIDs:     slotIDs,
		IsActive:        m.IsActive,
		CreatedBy:       createdBy,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	amenities := "[]"
	if len(r.Amenities) > 0 {
		if b, err := json.Marshal(r.Amenities); err == nil {
			amenities = string(b)
		}
	}

	var createdBy *int64
	if r.CreatedBy != 0 {
		v := r.CreatedBy
		createdBy = &v
	}

	return roomModel{
		ID:              r.ID,
		Name:            r.Name,
		Capacity:        r.Capacity,
		Status:          string(r.Status),
		PricePerSession: r.PricePerSession,
		Amenities:       amenities,
		IsActive:        r.IsActive,
		CreatedBy:       createdBy,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// Create inserts the room with its image metadata and time-slot links in one
// transaction.
func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toRoomModel(room)
		now := time.Now()
		m.CreatedAt = now
		m.UpdatedAt = now
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		for i := range room.Images {
			im := roomImageModel{
				RoomID:       m.ID,
				Filename:     room.Images[i].Filename,
				OriginalName: room.Images[i].OriginalName,
				Mimetype:     room.Images[i].Mimetype,
				Size:         room.Images[i].Size,
			}
			if err := tx.Create(&im).Error; err != nil {
				return err
			}
			room.Images[i].ID = im.ID
			room.Images[i].RoomID = m.ID
		}

		for _, slotID := range room.TimeSlotIDs {
			link := roomTimeSlotModel{RoomID: m.ID, TimeSlotID: slotID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		room.ID = m.ID
		room.CreatedAt = m.CreatedAt
		room.UpdatedAt = m.UpdatedAt
		return nil
	})
}

func (r *RoomRepository) loadRelations(ctx context.Context, roomID int64) ([]roomImageModel, []int64, error) {
	var images []roomImageModel
	if tx := r.db.WithContext(ctx).Where("room_id = ?", roomID).Find(&images); tx.Error != nil {
		return nil, nil, tx.Error
	}

	var slotIDs []int64
	tx := r.db.WithContext(ctx).
		Model(&roomTimeSlotModel{}).
		Where("room_id = ?", roomID).
		Pluck("time_slot_id", &slotIDs)
	if tx.Error != nil {
		return nil, nil, tx.Error
	}
	return images, slotIDs, nil
}

// GetByID returns an active room with images and slot links loaded.
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}

	images, slotIDs, err := r.loadRelations(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return toDomainRoom(m, images, slotIDs), nil
}

// GetAnyByID ignores the active flag. Booking history references rooms that
// may have been soft-deleted since.
func (r *RoomRepository) GetAnyByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}

	images, slotIDs, err := r.loadRelations(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return toDomainRoom(m, images, slotIDs), nil
}

func (r *RoomRepository) GetAll(ctx context.Context, limit, offset int) ([]domain.Room, error) {
	var ms []roomModel
	tx := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		images, slotIDs, err := r.loadRelations(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toDomainRoom(m, images, slotIDs))
	}
	return out, nil
}

func (r *RoomRepository) CountActive(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("is_active = ?", true).
		Count(&cnt)
	return cnt, tx.Error
}

// GetByTimeSlotIDs returns active rooms linked to any of the given slots.
// Each room's TimeSlotIDs is narrowed to the intersection with slotIDs.
func (r *RoomRepository) GetByTimeSlotIDs(ctx context.Context, slotIDs []int64) ([]domain.Room, error) {
	if len(slotIDs) == 0 {
		return []domain.Room{}, nil
	}

	var roomIDs []int64
	tx := r.db.WithContext(ctx).
		Model(&roomTimeSlotModel{}).
		Where("time_slot_id IN ?", slotIDs).
		Distinct().
		Pluck("room_id", &roomIDs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if len(roomIDs) == 0 {
		return []domain.Room{}, nil
	}

	var ms []roomModel
	tx = r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", roomIDs, true).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		var matched []int64
		tx := r.db.WithContext(ctx).
			Model(&roomTimeSlotModel{}).
			Where("room_id = ? AND time_slot_id IN ?", m.ID, slotIDs).
			Pluck("time_slot_id", &matched)
		if tx.Error != nil {
			return nil, tx.Error
		}

		var images []roomImageModel
		if tx := r.db.WithContext(ctx).Where("room_id = ?", m.ID).Find(&images); tx.Error != nil {
			return nil, tx.Error
		}
		out = append(out, *toDomainRoom(m, images, matched))
	}
	return out, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toRoomModel(room)
		m.UpdatedAt = time.Now()
		res := tx.Model(&roomModel{}).
			Where("id = ? AND is_active = ?", room.ID, true).
			Updates(map[string]any{
				"name":              m.Name,
				"capacity":          m.Capacity,
				"status":            m.Status,
				"price_per_session": m.PricePerSession,
				"amenities":         m.Amenities,
				"updated_at":        m.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if room.TimeSlotIDs != nil {
			if err := tx.Where("room_id = ?", room.ID).Delete(&roomTimeSlotModel{}).Error; err != nil {
				return err
			}
			for _, slotID := range room.TimeSlotIDs {
				link := roomTimeSlotModel{RoomID: room.ID, TimeSlotID: slotID}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
		}

		room.UpdatedAt = m.UpdatedAt
		return nil
	})
}

// SoftDelete flips is_active; rooms are never hard-deleted while the ledger
// references them.
func (r *RoomRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoomRepository) DeleteImage(ctx context.Context, roomID, imageID int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND room_id = ?", imageID, roomID).
		Delete(&roomImageModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
