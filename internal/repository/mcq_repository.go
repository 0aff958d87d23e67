package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Env1sage/LMS-MED-sub001/internal/model"
	"github.com/Env1sage/LMS-MED-sub001/pkg/logger"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const mcqCacheKeyPrefix = "mcq:"

// MCQRepository is the read side of the question bank. When a redis client is
// configured, lookups by id go through a read-through cache.
type MCQRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	TTL   time.Duration
}

func NewMCQRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *MCQRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &MCQRepository{DB: db, Redis: rdb, TTL: ttl}
}

// cachedMCQ mirrors model.MCQ including the fields hidden from API JSON.
type cachedMCQ struct {
	ID            string          `json:"id"`
	Subject       string          `json:"subject"`
	Topic         string          `json:"topic"`
	Question      string          `json:"question"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer string          `json:"correctAnswer"`
	Explanation   string          `json:"explanation"`
	Difficulty    string          `json:"difficulty"`
	Status        model.MCQStatus `json:"status"`
}

func toCached(m *model.MCQ) cachedMCQ {
	return cachedMCQ{
		ID:            m.ID,
		Subject:       m.Subject,
		Topic:         m.Topic,
		Question:      m.Question,
		Options:       json.RawMessage(m.Options),
		CorrectAnswer: m.CorrectAnswer,
		Explanation:   m.Explanation,
		Difficulty:    m.Difficulty,
		Status:        m.Status,
	}
}

func (c cachedMCQ) toModel() model.MCQ {
	m := model.MCQ{
		Subject:       c.Subject,
		Topic:         c.Topic,
		Question:      c.Question,
		Options:       datatypes.JSON(c.Options),
		CorrectAnswer: c.CorrectAnswer,
		Explanation:   c.Explanation,
		Difficulty:    c.Difficulty,
		Status:        c.Status,
	}
	m.ID = c.ID
	return m
}

func (r *MCQRepository) FindByID(ctx context.Context, id string) (*model.MCQ, error) {
	found, err := r.FindByIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	m, ok := found[id]
	if !ok {
		return nil, notFound(gorm.ErrRecordNotFound)
	}
	return m, nil
}

// FindByIDs returns the questions that exist among ids, keyed by id.
func (r *MCQRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*model.MCQ, error) {
	out := make(map[string]*model.MCQ, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	missing := ids
	if r.Redis != nil {
		missing = r.readCache(ctx, ids, out)
	}
	if len(missing) == 0 {
		return out, nil
	}

	var rows []model.MCQ
	if err := r.DB.WithContext(ctx).Where("id IN ?", missing).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ID] = &rows[i]
	}
	if r.Redis != nil {
		r.writeCache(ctx, rows)
	}
	return out, nil
}

// ListApprovedIDs returns the ids of approved questions matching the optional
// subject and topic filters.
func (r *MCQRepository) ListApprovedIDs(ctx context.Context, subject, topic string) ([]string, error) {
	q := r.DB.WithContext(ctx).Model(&model.MCQ{}).Where("status = ?", model.MCQApproved)
	if subject != "" {
		q = q.Where("subject = ?", subject)
	}
	if topic != "" {
		q = q.Where("topic = ?", topic)
	}

	var ids []string
	err := q.Order("id asc").Pluck("id", &ids).Error
	return ids, err
}

func (r *MCQRepository) Create(ctx context.Context, m *model.MCQ) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *MCQRepository) readCache(ctx context.Context, ids []string, out map[string]*model.MCQ) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = mcqCacheKeyPrefix + id
	}

	vals, err := r.Redis.MGet(ctx, keys...).Result()
	if err != nil {
		logger.Log.Warn("mcq cache read failed", zap.Error(err))
		return ids
	}

	missing := make([]string, 0, len(ids))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}
		var c cachedMCQ
		if err := json.Unmarshal([]byte(s), &c); err != nil {
			missing = append(missing, ids[i])
			continue
		}
		m := c.toModel()
		out[m.ID] = &m
	}
	return missing
}

func (r *MCQRepository) writeCache(ctx context.Context, rows []model.MCQ) {
	pipe := r.Redis.Pipeline()
	for i := range rows {
		b, err := json.Marshal(toCached(&rows[i]))
		if err != nil {
			continue
		}
		pipe.Set(ctx, mcqCacheKeyPrefix+rows[i].ID, b, r.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Warn("mcq cache write failed", zap.Error(err))
	}
}
