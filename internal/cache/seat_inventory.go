package cache

import (
	"context"
	"errors"
	"fmt"

	apperrors "go-booking-engine/pkg/app_errors"

	"github.com/redis/go-redis/v9"
)

// SeatInventoryManager is the serialization point for seat ownership. A
// claim is a single atomic conditional write: either every requested seat
// is added to the showtime's claimed set, or none is. All concurrent
// booking requests for a showtime race through this one operation.
type SeatInventoryManager interface {
	// WarmUp seeds the claimed-seat set from the durable store and marks the
	// showtime open for sale. Claims against a showtime that was never warmed
	// up fail closed.
	WarmUp(ctx context.Context, showtimeID int, bookedSeats []string) error
	// ClaimSeats atomically claims all seats or none. On conflict it returns
	// *apperrors.SeatsUnavailableError naming the already-claimed seats.
	ClaimSeats(ctx context.Context, showtimeID int, seats []string) error
	// ReleaseSeats removes the seats from the claimed set. Idempotent;
	// releasing unclaimed seats is a no-op.
	ReleaseSeats(ctx context.Context, showtimeID int, seats []string) error
	// ClaimedSeats returns the current claimed set.
	ClaimedSeats(ctx context.Context, showtimeID int) ([]string, error)
}

type RedisSeatInventoryManager struct {
	client *redis.Client
}

func NewRedisSeatInventoryManager(client *redis.Client) SeatInventoryManager {
	return &RedisSeatInventoryManager{
		client: client,
	}
}

func (m *RedisSeatInventoryManager) seatsKey(showtimeID int) string {
	return fmt.Sprintf("showtime:%d:seats", showtimeID)
}

// open marker distinguishes "no seats claimed yet" from "never warmed up".
func (m *RedisSeatInventoryManager) openKey(showtimeID int) string {
	return fmt.Sprintf("showtime:%d:open", showtimeID)
}

func (m *RedisSeatInventoryManager) WarmUp(ctx context.Context, showtimeID int, bookedSeats []string) error {
	seatsKey := m.seatsKey(showtimeID)
	openKey := m.openKey(showtimeID)

	_, err := m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, seatsKey)
		if len(bookedSeats) > 0 {
			members := make([]interface{}, len(bookedSeats))
			for i, seat := range bookedSeats {
				members[i] = seat
			}
			pipe.SAdd(ctx, seatsKey, members...)
		}
		pipe.Set(ctx, openKey, "1", 0)
		return nil
	})
	return err
}

// claimSeatsScript checks every requested seat and claims all of them in
// one step. Return codes: {1} claimed, {0, taken} conflict with the list
// of already-claimed seats, {-1} showtime not warmed up.
const claimSeatsScript = `
	local seats_key = KEYS[1]
	local open_key = KEYS[2]

	if redis.call('EXISTS', open_key) == 0 then
		return {-1}
	end

	local taken = {}
	for i = 1, #ARGV do
		if redis.call('SISMEMBER', seats_key, ARGV[i]) == 1 then
			taken[#taken + 1] = ARGV[i]
		end
	end

	if #taken > 0 then
		return {0, taken}
	end

	redis.call('SADD', seats_key, unpack(ARGV))
	return {1}
`

func (m *RedisSeatInventoryManager) ClaimSeats(ctx context.Context, showtimeID int, seats []string) error {
	if len(seats) == 0 {
		return apperrors.ErrInvalidInput
	}

	keys := []string{m.seatsKey(showtimeID), m.openKey(showtimeID)}
	args := make([]interface{}, len(seats))
	for i, seat := range seats {
		args[i] = seat
	}

	result, err := m.client.Eval(ctx, claimSeatsScript, keys, args...).Result()
	if err != nil {
		return fmt.Errorf("claim seats: %w", err)
	}

	resSlice, ok := result.([]interface{})
	if !ok || len(resSlice) == 0 {
		return errors.New("unexpected claim result")
	}

	code, ok := resSlice[0].(int64)
	if !ok {
		return errors.New("unexpected claim result")
	}

	switch code {
	case 1:
		return nil
	case 0:
		rawTaken, _ := resSlice[1].([]interface{})
		taken := make([]string, 0, len(rawTaken))
		for _, v := range rawTaken {
			if s, ok := v.(string); ok {
				taken = append(taken, s)
			}
		}
		return &apperrors.SeatsUnavailableError{Seats: taken}
	case -1:
		return apperrors.ErrShowtimeUnavailable
	default:
		return errors.New("unexpected claim result")
	}
}

func (m *RedisSeatInventoryManager) ReleaseSeats(ctx context.Context, showtimeID int, seats []string) error {
	if len(seats) == 0 {
		return nil
	}
	members := make([]interface{}, len(seats))
	for i, seat := range seats {
		members[i] = seat
	}
	return m.client.SRem(ctx, m.seatsKey(showtimeID), members...).Err()
}

func (m *RedisSeatInventoryManager) ClaimedSeats(ctx context.Context, showtimeID int) ([]string, error) {
	return m.client.SMembers(ctx, m.seatsKey(showtimeID)).Result()
}
