package repository

import (
	"context"
	"encoding/json"
	"time"

	"tutormatch/internal/domain"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

type notificationModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	Type      string    `gorm:"column:type"`
	Title     string    `gorm:"column:title"`
	Message   *string   `gorm:"column:message"`
	IsRead    bool      `gorm:"column:is_read;index"`
	Data      *string   `gorm:"column:data;type:json"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (notificationModel) TableName() string { return "notifications" }

func toDomainNotification(m notificationModel) domain.Notification {
	n := domain.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      domain.NotificationType(m.Type),
		Title:     m.Title,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
	if m.Message != nil {
		n.Message = *m.Message
	}
	if m.Data != nil {
		var data map[string]any
		if err := json.Unmarshal([]byte(*m.Data), &data); err == nil {
			n.Data = data
		}
	}
	return n
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification, data map[string]any) error {
	m := notificationModel{
		UserID: n.UserID,
		Type:   string(n.Type),
		Title:  n.Title,
		IsRead: n.IsRead,
	}
	if n.Message != "" {
		v := n.Message
		m.Message = &v
	}
	if len(data) > 0 {
		if b, err := json.Marshal(data); err == nil {
			s := string(b)
			m.Data = &s
		}
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*n = toDomainNotification(m)
	n.Data = data
	return nil
}

func (r *NotificationRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	var rows []notificationModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Notification, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainNotification(m))
	}
	return out, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&notificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&cnt)
	return cnt, tx.Error
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return r.db.WithContext(ctx).Model(&notificationModel{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&notificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// DeleteOlderThan removes notifications past the retention window.
func (r *NotificationRepository) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	tx := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&notificationModel{})
	return tx.RowsAffected, tx.Error
}
