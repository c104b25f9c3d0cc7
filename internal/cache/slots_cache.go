package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/Williamhssilva/agendapro/internal/domain/booking"
)

// SlotsCache guarda o resultado do cálculo de disponibilidade por
// (estabelecimento, profissional, serviço, dia). A invalidação é por
// versão: cada escrita no dia do profissional incrementa a versão e
// órfãos expiram pelo TTL. A listagem é informativa — o create dentro
// do lock é a autoridade — então uma janela curta de staleness é
// aceitável por contrato.
type SlotsCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewSlotsCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *SlotsCache {
	return &SlotsCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *SlotsCache) versionKey(professionalID uint, day string) string {
	return fmt.Sprintf("agendapro:slots:ver:%d:%s", professionalID, day)
}

func (c *SlotsCache) slotsKey(establishmentID, professionalID, serviceID uint, day string, ver int64) string {
	return fmt.Sprintf("agendapro:slots:%d:%d:%d:%s:v%d",
		establishmentID, professionalID, serviceID, day, ver)
}

func (c *SlotsCache) version(ctx context.Context, professionalID uint, day string) int64 {
	ver, err := c.rdb.Get(ctx, c.versionKey(professionalID, day)).Int64()
	if err != nil {
		return 0
	}
	return ver
}

// GetSlots retorna (slots, true) em hit. Qualquer erro de redis é miss.
func (c *SlotsCache) GetSlots(
	ctx context.Context,
	establishmentID, professionalID, serviceID uint,
	day string,
) ([]domain.TimeSlot, bool) {

	if c == nil || c.rdb == nil {
		return nil, false
	}

	ver := c.version(ctx, professionalID, day)
	raw, err := c.rdb.Get(ctx, c.slotsKey(establishmentID, professionalID, serviceID, day, ver)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotsCache) SetSlots(
	ctx context.Context,
	establishmentID, professionalID, serviceID uint,
	day string,
	slots []domain.TimeSlot,
) {

	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	ver := c.version(ctx, professionalID, day)
	key := c.slotsKey(establishmentID, professionalID, serviceID, day, ver)
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil && c.log != nil {
		c.log.Debug("slots cache set failed", zap.Error(err))
	}
}

// InvalidateDay descarta todos os serviços do dia do profissional de
// uma vez, incrementando a versão.
func (c *SlotsCache) InvalidateDay(ctx context.Context, professionalID uint, day string) {
	if c == nil || c.rdb == nil {
		return
	}

	key := c.versionKey(professionalID, day)
	if err := c.rdb.Incr(ctx, key).Err(); err != nil {
		if c.log != nil {
			c.log.Debug("slots cache invalidate failed", zap.Error(err))
		}
		return
	}
	c.rdb.Expire(ctx, key, 48*time.Hour)
}
