package repository

import (
	"context"
	"time"

	"tutormatch/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingRequestModel struct {
	ID                    int64     `gorm:"column:id;primaryKey"`
	StudentID             int64     `gorm:"column:student_id;index"`
	TutorProfileID        int64     `gorm:"column:tutor_profile_id;index"`
	RequestedMode         string    `gorm:"column:requested_mode"`
	PreferredDate         *string   `gorm:"column:preferred_date"`
	PricePerHourAtBooking float64   `gorm:"column:price_per_hour_at_booking"`
	Status                string    `gorm:"column:status;index"`
	CreatedAt             time.Time `gorm:"column:created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at"`
}

func (bookingRequestModel) TableName() string { return "booking_requests" }

type bookingMessageModel struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	BookingID int64      `gorm:"column:booking_id;index;constraint:OnDelete:CASCADE"`
	SenderID  int64      `gorm:"column:sender_id"`
	Content   string     `gorm:"column:content;type:text"`
	SentAt    time.Time  `gorm:"column:sent_at;index"`
	IsRead    bool       `gorm:"column:is_read"`
	ReadAt    *time.Time `gorm:"column:read_at"`
}

func (bookingMessageModel) TableName() string { return "booking_messages" }

func toDomainBookingRequest(m bookingRequestModel) *domain.BookingRequest {
	b := &domain.BookingRequest{
		ID:                    m.ID,
		StudentID:             m.StudentID,
		TutorProfileID:        m.TutorProfileID,
		RequestedMode:         domain.TeachingMode(m.RequestedMode),
		PricePerHourAtBooking: m.PricePerHourAtBooking,
		Status:                domain.BookingStatus(m.Status),
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
	if m.PreferredDate != nil {
		b.PreferredDate = *m.PreferredDate
	}
	return b
}

func toBookingRequestModel(b *domain.BookingRequest) bookingRequestModel {
	m := bookingRequestModel{
		ID:                    b.ID,
		StudentID:             b.StudentID,
		TutorProfileID:        b.TutorProfileID,
		RequestedMode:         string(b.RequestedMode),
		PricePerHourAtBooking: b.PricePerHourAtBooking,
		Status:                string(b.Status),
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
	if b.PreferredDate != "" {
		v := b.PreferredDate
		m.PreferredDate = &v
	}
	return m
}

func toDomainMessage(m bookingMessageModel) domain.BookingMessage {
	return domain.BookingMessage{
		ID:        m.ID,
		BookingID: m.BookingID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		SentAt:    m.SentAt,
		IsRead:    m.IsRead,
		ReadAt:    m.ReadAt,
	}
}

// Create inserts the request together with its initial message in one
// transaction, so a request never exists without the opening message.
func (r *BookingRepository) Create(ctx context.Context, b *domain.BookingRequest, initial *domain.BookingMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toBookingRequestModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*b = *toDomainBookingRequest(m)

		if initial != nil {
			mm := bookingMessageModel{
				BookingID: m.ID,
				SenderID:  initial.SenderID,
				Content:   initial.Content,
				SentAt:    initial.SentAt,
			}
			if err := tx.Create(&mm).Error; err != nil {
				return err
			}
			*initial = toDomainMessage(mm)
			b.Messages = []domain.BookingMessage{*initial}
		}
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	var m bookingRequestModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookingRequest(m), nil
}

// UpdateStatusIf is the compare-and-swap used for every transition. It only
// moves the row when the status still equals from; a stale caller gets ok=false
// instead of silently overwriting a concurrent transition.
func (r *BookingRepository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&bookingRequestModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *BookingRepository) AddMessage(ctx context.Context, msg *domain.BookingMessage) error {
	m := bookingMessageModel{
		BookingID: msg.BookingID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		SentAt:    msg.SentAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*msg = toDomainMessage(m)
	return nil
}

func (r *BookingRepository) GetMessages(ctx context.Context, bookingID int64) ([]domain.BookingMessage, error) {
	var rows []bookingMessageModel
	tx := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("sent_at ASC, id ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.BookingMessage, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainMessage(m))
	}
	return out, nil
}

// MarkMessagesRead flags every unread message not sent by readerID.
func (r *BookingRepository) MarkMessagesRead(ctx context.Context, bookingID, readerID int64, at time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&bookingMessageModel{}).
		Where("booking_id = ? AND sender_id <> ? AND is_read = ?", bookingID, readerID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": at,
		})
	return tx.RowsAffected, tx.Error
}

func (r *BookingRepository) ListByStudent(ctx context.Context, studentID int64, limit, offset int) ([]domain.BookingRequest, error) {
	return r.list(ctx, "student_id = ?", studentID, limit, offset)
}

func (r *BookingRepository) ListByTutorProfile(ctx context.Context, tutorProfileID int64, limit, offset int) ([]domain.BookingRequest, error) {
	return r.list(ctx, "tutor_profile_id = ?", tutorProfileID, limit, offset)
}

func (r *BookingRepository) list(ctx context.Context, cond string, arg any, limit, offset int) ([]domain.BookingRequest, error) {
	q := r.db.WithContext(ctx).Where(cond, arg).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var rows []bookingRequestModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.BookingRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBookingRequest(m))
	}
	return out, nil
}

// ResponseStats counts how many requests a tutor has received and how many
// they have answered (accepted, declined, or carried through to completion).
func (r *BookingRepository) ResponseStats(ctx context.Context, tutorProfileID int64) (total, responded int64, err error) {
	base := r.db.WithContext(ctx).Model(&bookingRequestModel{}).
		Where("tutor_profile_id = ?", tutorProfileID)

	if err = base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = base.Session(&gorm.Session{}).
		Where("status IN ?", []string{
			string(domain.BookingAccepted),
			string(domain.BookingDeclined),
			string(domain.BookingCompleted),
		}).
		Count(&responded).Error
	return total, responded, err
}
