//go:build unit

// Package sharedtest provides an in-memory UnitOfWork for use-case tests. It
// enforces the same constraints the PostgreSQL schema does: the booking
// overlap exclusion, one succeeded intent per booking, one payout per booking
// and unique notification dedupe keys.
package sharedtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/notification"
	"shortlet-booking/internal/domain/payment"
	"shortlet-booking/internal/domain/payout"
	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/infra"
	"shortlet-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type User struct {
	Email string
	Name  string
}

type idemKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type payoutRow struct {
	id         uuid.UUID
	bookingID  uuid.UUID
	hostID     uuid.UUID
	amount     int64
	currency   string
	status     payout.Status
	settlement *payout.Settlement
	eligibleAt time.Time
	paidAt     *time.Time
}

type state struct {
	properties  map[uuid.UUID]*property.Property
	users       map[uuid.UUID]User
	bookings    map[uuid.UUID]booking.Snapshot
	blocks      map[uuid.UUID]*property.Block
	intents     map[string]payment.Snapshot
	payouts     map[uuid.UUID]payoutRow
	jobs        []notification.Job
	idempotency map[idemKey]shared.IdempotencyRecord
}

func (s *state) clone() *state {
	c := &state{
		properties:  make(map[uuid.UUID]*property.Property, len(s.properties)),
		users:       make(map[uuid.UUID]User, len(s.users)),
		bookings:    make(map[uuid.UUID]booking.Snapshot, len(s.bookings)),
		blocks:      make(map[uuid.UUID]*property.Block, len(s.blocks)),
		intents:     make(map[string]payment.Snapshot, len(s.intents)),
		payouts:     make(map[uuid.UUID]payoutRow, len(s.payouts)),
		jobs:        append([]notification.Job(nil), s.jobs...),
		idempotency: make(map[idemKey]shared.IdempotencyRecord, len(s.idempotency)),
	}
	for k, v := range s.properties {
		c.properties[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.blocks {
		c.blocks[k] = v
	}
	for k, v := range s.intents {
		c.intents[k] = v
	}
	for k, v := range s.payouts {
		c.payouts[k] = v
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	return c
}

// Store is a UnitOfWork whose transactions work on a copy of the data and
// swap it in on commit. Transactions run one at a time.
type Store struct {
	mu     sync.Mutex
	data   *state
	faults map[string]error
	once   map[string]bool

	Commits   int
	Rollbacks int
}

var _ shared.UnitOfWork = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		data:   (&state{}).clone(),
		faults: map[string]error{},
		once:   map[string]bool{},
	}
}

// FailOn makes the named repository operation, e.g. "Bookings.UpdateState",
// return err until ClearFaults is called.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

// FailOnce is FailOn for a single call.
func (s *Store) FailOnce(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
	s.once[op] = true
}

func (s *Store) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = map[string]error{}
	s.once = map[string]bool{}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(ctx, &memTx{data: work, store: s}); err != nil {
		s.Rollbacks++
		return err
	}
	s.data = work
	s.Commits++
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, &memTx{data: s.data.clone(), store: s})
}

// Seeding and inspection helpers.

func (s *Store) AddProperty(p *property.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.properties[p.ID()] = p
}

func (s *Store) AddUser(id uuid.UUID, email, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[id] = User{Email: email, Name: name}
}

func (s *Store) PutBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.bookings[b.ID()] = b.Snapshot()
}

func (s *Store) Booking(id uuid.UUID) *booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.data.bookings[id]
	if !ok {
		return nil
	}
	return booking.Reconstruct(snap)
}

func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.bookings)
}

func (s *Store) PutBlock(b *property.Block) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.blocks[b.ID()] = b
}

func (s *Store) Block(id uuid.UUID) *property.Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.blocks[id]
}

func (s *Store) PutIntent(i *payment.Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.intents[i.Reference()] = snapshotIntent(i)
}

func (s *Store) Intent(reference string) *payment.Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.data.intents[reference]
	if !ok {
		return nil
	}
	return payment.Reconstruct(snap)
}

func (s *Store) IntentsFor(bookingID uuid.UUID) []*payment.Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return intentsFor(s.data, bookingID)
}

func (s *Store) PutPayout(p *payout.Payout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.payouts[p.ID()] = toPayoutRow(p)
}

func (s *Store) Payouts() []*payout.Payout {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*payout.Payout, 0, len(s.data.payouts))
	for _, r := range s.data.payouts {
		out = append(out, r.domain())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EligibleAt().Before(out[j].EligibleAt()) })
	return out
}

func (s *Store) PayoutFor(bookingID uuid.UUID) *payout.Payout {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.data.payouts {
		if r.bookingID == bookingID {
			return r.domain()
		}
	}
	return nil
}

func (s *Store) PutJob(j notification.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.jobs = append(s.data.jobs, j)
}

func (s *Store) Jobs() []notification.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notification.Job(nil), s.data.jobs...)
}

// JobsFor lists the outbox jobs about subjectID with the given topic.
func (s *Store) JobsFor(subjectID uuid.UUID, topic notification.Topic) []notification.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []notification.Job
	for _, j := range s.data.jobs {
		if j.SubjectID == subjectID && j.Topic == topic {
			out = append(out, j)
		}
	}
	return out
}

func (s *Store) PutIdempotency(r shared.IdempotencyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.idempotency[idemKey{key: r.Key, userID: r.UserID}] = r
}

func (s *Store) Idempotency(key, userID uuid.UUID) (shared.IdempotencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data.idempotency[idemKey{key: key, userID: userID}]
	return r, ok
}

type memTx struct {
	data  *state
	store *Store
}

// fault runs under the store lock held by Within.
func (t *memTx) fault(op string) error {
	err := t.store.faults[op]
	if err != nil && t.store.once[op] {
		delete(t.store.faults, op)
		delete(t.store.once, op)
	}
	return err
}

func (t *memTx) Bookings() shared.BookingRepository             { return bookingRepo{t} }
func (t *memTx) Properties() shared.PropertyRepository          { return propertyRepo{t} }
func (t *memTx) Blocks() shared.BlockRepository                 { return blockRepo{t} }
func (t *memTx) PaymentIntents() shared.PaymentIntentRepository { return intentRepo{t} }
func (t *memTx) Payouts() shared.PayoutRepository               { return payoutRepo{t} }
func (t *memTx) Notifications() shared.NotificationRepository   { return notificationRepo{t} }
func (t *memTx) Idempotency() shared.IdempotencyRepository      { return idempotencyRepo{t} }

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

// occupiesCalendar mirrors the bookings_no_overlap exclusion predicate, which
// ignores hold lapse: only the sweeper or an inline expiry frees the dates.
func occupiesCalendar(s booking.Status) bool {
	return s == booking.StatusPendingPayment || s == booking.StatusPending || s == booking.StatusConfirmed
}

type bookingRepo struct{ tx *memTx }

func (r bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if err := r.tx.fault("Bookings.Create"); err != nil {
		return err
	}
	if _, ok := r.tx.data.properties[b.PropertyID()]; !ok {
		return infra.WrapRepoErr("failed to create booking", nil, infra.KindForeignKeyViolated)
	}
	for _, other := range r.tx.data.bookings {
		if other.PropertyID == b.PropertyID() && occupiesCalendar(other.Status) && other.Dates.Overlaps(b.Dates()) {
			return infra.WrapRepoErr("failed to create booking", nil, infra.KindConflict)
		}
	}
	r.tx.data.bookings[b.ID()] = b.Snapshot()
	return nil
}

func (r bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	if err := r.tx.fault("Bookings.FindByID"); err != nil {
		return nil, err
	}
	snap, ok := r.tx.data.bookings[id]
	if !ok {
		return nil, notFound("booking")
	}
	return booking.Reconstruct(snap), nil
}

func (r bookingRepo) LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	if err := r.tx.fault("Bookings.LockByID"); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r bookingRepo) UpdateState(_ context.Context, b *booking.Booking, expected booking.Status) (bool, error) {
	if err := r.tx.fault("Bookings.UpdateState"); err != nil {
		return false, err
	}
	stored, ok := r.tx.data.bookings[b.ID()]
	if !ok || stored.Status != expected {
		return false, nil
	}
	r.tx.data.bookings[b.ID()] = b.Snapshot()
	return true, nil
}

func (r bookingRepo) ListOccupying(_ context.Context, q shared.OccupancyQuery) ([]shared.OccupiedStay, error) {
	if err := r.tx.fault("Bookings.ListOccupying"); err != nil {
		return nil, err
	}
	var out []shared.OccupiedStay
	for id, snap := range r.tx.data.bookings {
		if snap.PropertyID != q.PropertyID {
			continue
		}
		if q.ExcludeID != nil && *q.ExcludeID == id {
			continue
		}
		if !booking.Reconstruct(snap).IsActiveAt(q.Now) {
			continue
		}
		if q.Window != nil && !snap.Dates.Overlaps(*q.Window) {
			continue
		}
		out = append(out, shared.OccupiedStay{BookingID: id, Dates: snap.Dates, Status: snap.Status})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dates.CheckIn().Before(out[j].Dates.CheckIn()) })
	return out, nil
}

func (r bookingRepo) LockLapsedHoldsOverlapping(_ context.Context, propertyID uuid.UUID, dates stay.DateRange, now time.Time) ([]uuid.UUID, error) {
	if err := r.tx.fault("Bookings.LockLapsedHoldsOverlapping"); err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	for id, snap := range r.tx.data.bookings {
		if snap.PropertyID == propertyID && lapsedHold(snap, now) && snap.Dates.Overlaps(dates) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func (r bookingRepo) ListDueForExpiry(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	if err := r.tx.fault("Bookings.ListDueForExpiry"); err != nil {
		return nil, err
	}
	var due []booking.Snapshot
	for _, snap := range r.tx.data.bookings {
		if lapsedHold(snap, now) {
			due = append(due, snap)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ExpiresAt.Before(due[j].ExpiresAt) })
	return limitIDs(due, limit), nil
}

func (r bookingRepo) ListPayoutCandidates(_ context.Context, checkOutBefore time.Time, limit int) ([]uuid.UUID, error) {
	if err := r.tx.fault("Bookings.ListPayoutCandidates"); err != nil {
		return nil, err
	}
	paid := map[uuid.UUID]bool{}
	for _, p := range r.tx.data.payouts {
		paid[p.bookingID] = true
	}
	var candidates []booking.Snapshot
	for id, snap := range r.tx.data.bookings {
		if snap.Status == booking.StatusConfirmed && !snap.Dates.CheckOut().After(checkOutBefore) && !paid[id] {
			candidates = append(candidates, snap)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Dates.CheckOut().Before(candidates[j].Dates.CheckOut())
	})
	return limitIDs(candidates, limit), nil
}

func lapsedHold(s booking.Snapshot, now time.Time) bool {
	return s.Status == booking.StatusPendingPayment && s.PaymentStatus == booking.PaymentUnpaid && s.ExpiresAt.Before(now)
}

func limitIDs(snaps []booking.Snapshot, limit int) []uuid.UUID {
	if limit > 0 && len(snaps) > limit {
		snaps = snaps[:limit]
	}
	ids := make([]uuid.UUID, 0, len(snaps))
	for _, s := range snaps {
		ids = append(ids, s.ID)
	}
	return ids
}

type propertyRepo struct{ tx *memTx }

func (r propertyRepo) FindByID(_ context.Context, id uuid.UUID) (*property.Property, error) {
	if err := r.tx.fault("Properties.FindByID"); err != nil {
		return nil, err
	}
	p, ok := r.tx.data.properties[id]
	if !ok {
		return nil, notFound("property")
	}
	return p, nil
}

func (r propertyRepo) LockByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	if err := r.tx.fault("Properties.LockByID"); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

type blockRepo struct{ tx *memTx }

func (r blockRepo) Create(_ context.Context, b *property.Block) error {
	if err := r.tx.fault("Blocks.Create"); err != nil {
		return err
	}
	if _, ok := r.tx.data.properties[b.PropertyID()]; !ok {
		return infra.WrapRepoErr("failed to create block", nil, infra.KindForeignKeyViolated)
	}
	r.tx.data.blocks[b.ID()] = b
	return nil
}

func (r blockRepo) FindByID(_ context.Context, id uuid.UUID) (*property.Block, error) {
	b, ok := r.tx.data.blocks[id]
	if !ok {
		return nil, notFound("block")
	}
	return b, nil
}

func (r blockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.tx.data.blocks[id]; !ok {
		return notFound("block")
	}
	delete(r.tx.data.blocks, id)
	return nil
}

func (r blockRepo) ListInWindow(_ context.Context, propertyID uuid.UUID, window *stay.DateRange) ([]*property.Block, error) {
	if err := r.tx.fault("Blocks.ListInWindow"); err != nil {
		return nil, err
	}
	var out []*property.Block
	for _, b := range r.tx.data.blocks {
		if b.PropertyID() != propertyID {
			continue
		}
		if window != nil && !b.Dates().Overlaps(*window) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dates().CheckIn().Before(out[j].Dates().CheckIn()) })
	return out, nil
}

type intentRepo struct{ tx *memTx }

func (r intentRepo) InsertIfAbsent(_ context.Context, i *payment.Intent) (bool, error) {
	if err := r.tx.fault("PaymentIntents.InsertIfAbsent"); err != nil {
		return false, err
	}
	if _, ok := r.tx.data.intents[i.Reference()]; ok {
		return false, nil
	}
	if _, ok := r.tx.data.bookings[i.BookingID()]; !ok {
		return false, infra.WrapRepoErr("failed to insert payment intent", nil, infra.KindForeignKeyViolated)
	}
	r.tx.data.intents[i.Reference()] = snapshotIntent(i)
	return true, nil
}

func (r intentRepo) LockByReference(_ context.Context, reference string) (*payment.Intent, error) {
	if err := r.tx.fault("PaymentIntents.LockByReference"); err != nil {
		return nil, err
	}
	snap, ok := r.tx.data.intents[reference]
	if !ok {
		return nil, notFound("payment intent")
	}
	return payment.Reconstruct(snap), nil
}

// Update enforces the one-succeeded-intent-per-booking partial unique index.
func (r intentRepo) Update(_ context.Context, i *payment.Intent) error {
	if err := r.tx.fault("PaymentIntents.Update"); err != nil {
		return err
	}
	if _, ok := r.tx.data.intents[i.Reference()]; !ok {
		return notFound("payment intent")
	}
	if i.Status() == payment.StatusSucceeded {
		for ref, other := range r.tx.data.intents {
			if ref != i.Reference() && other.BookingID == i.BookingID() && other.Status == payment.StatusSucceeded {
				return infra.WrapRepoErr("failed to update payment intent", nil, infra.KindDuplicateKey)
			}
		}
	}
	r.tx.data.intents[i.Reference()] = snapshotIntent(i)
	return nil
}

func (r intentRepo) CountSucceeded(_ context.Context, bookingID uuid.UUID) (int64, error) {
	var n int64
	for _, snap := range r.tx.data.intents {
		if snap.BookingID == bookingID && snap.Status == payment.StatusSucceeded {
			n++
		}
	}
	return n, nil
}

func (r intentRepo) ListByBooking(_ context.Context, bookingID uuid.UUID) ([]*payment.Intent, error) {
	return intentsFor(r.tx.data, bookingID), nil
}

func (r intentRepo) ListStalePending(_ context.Context, staleBefore, createdAfter time.Time, limit int) ([]shared.StaleIntent, error) {
	if err := r.tx.fault("PaymentIntents.ListStalePending"); err != nil {
		return nil, err
	}
	var stale []payment.Snapshot
	for _, snap := range r.tx.data.intents {
		if snap.Status != payment.StatusPending || !snap.UpdatedAt.Before(staleBefore) || !snap.CreatedAt.After(createdAfter) {
			continue
		}
		b, ok := r.tx.data.bookings[snap.BookingID]
		if !ok || (b.Status != booking.StatusPendingPayment && b.Status != booking.StatusExpired) {
			continue
		}
		stale = append(stale, snap)
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].UpdatedAt.Before(stale[j].UpdatedAt) })
	if limit > 0 && len(stale) > limit {
		stale = stale[:limit]
	}
	out := make([]shared.StaleIntent, 0, len(stale))
	for _, s := range stale {
		out = append(out, shared.StaleIntent{Reference: s.Reference, BookingID: s.BookingID})
	}
	return out, nil
}

func (r intentRepo) Touch(_ context.Context, reference string, checkedAt time.Time) (bool, error) {
	if err := r.tx.fault("PaymentIntents.Touch"); err != nil {
		return false, err
	}
	snap, ok := r.tx.data.intents[reference]
	if !ok || snap.Status != payment.StatusPending {
		return false, nil
	}
	snap.UpdatedAt = checkedAt
	r.tx.data.intents[reference] = snap
	return true, nil
}

func intentsFor(data *state, bookingID uuid.UUID) []*payment.Intent {
	var out []*payment.Intent
	for _, snap := range data.intents {
		if snap.BookingID == bookingID {
			out = append(out, payment.Reconstruct(snap))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out
}

func snapshotIntent(i *payment.Intent) payment.Snapshot {
	return payment.Snapshot{
		ID:               i.ID(),
		BookingID:        i.BookingID(),
		Provider:         i.Provider(),
		Reference:        i.Reference(),
		Amount:           i.Amount(),
		Currency:         i.Currency(),
		Status:           i.Status(),
		AuthorizationURL: i.AuthorizationURL(),
		RawPayload:       i.RawPayload(),
		CreatedAt:        i.CreatedAt(),
		UpdatedAt:        i.UpdatedAt(),
	}
}

type payoutRepo struct{ tx *memTx }

func (r payoutRepo) InsertIfAbsent(_ context.Context, p *payout.Payout) (bool, error) {
	if err := r.tx.fault("Payouts.InsertIfAbsent"); err != nil {
		return false, err
	}
	for _, existing := range r.tx.data.payouts {
		if existing.bookingID == p.BookingID() {
			return false, nil
		}
	}
	r.tx.data.payouts[p.ID()] = toPayoutRow(p)
	return true, nil
}

func (r payoutRepo) FindByID(_ context.Context, id uuid.UUID) (*payout.Payout, error) {
	row, ok := r.tx.data.payouts[id]
	if !ok {
		return nil, notFound("payout")
	}
	return row.domain(), nil
}

func (r payoutRepo) LockByID(ctx context.Context, id uuid.UUID) (*payout.Payout, error) {
	return r.FindByID(ctx, id)
}

func (r payoutRepo) MarkPaid(_ context.Context, p *payout.Payout) (bool, error) {
	if err := r.tx.fault("Payouts.MarkPaid"); err != nil {
		return false, err
	}
	row, ok := r.tx.data.payouts[p.ID()]
	if !ok || row.status != payout.StatusEligible {
		return false, nil
	}
	r.tx.data.payouts[p.ID()] = toPayoutRow(p)
	return true, nil
}

func toPayoutRow(p *payout.Payout) payoutRow {
	return payoutRow{
		id:         p.ID(),
		bookingID:  p.BookingID(),
		hostID:     p.HostID(),
		amount:     p.Amount(),
		currency:   p.Currency(),
		status:     p.Status(),
		settlement: p.Settlement(),
		eligibleAt: p.EligibleAt(),
		paidAt:     p.PaidAt(),
	}
}

func (r payoutRow) domain() *payout.Payout {
	return payout.Reconstruct(r.id, r.bookingID, r.hostID, r.amount, r.currency, r.status, r.settlement, r.eligibleAt, r.paidAt)
}

type notificationRepo struct{ tx *memTx }

func (r notificationRepo) Enqueue(_ context.Context, job notification.Job) (bool, error) {
	if err := r.tx.fault("Notifications.Enqueue"); err != nil {
		return false, err
	}
	for _, existing := range r.tx.data.jobs {
		if existing.DedupeKey == job.DedupeKey {
			return false, nil
		}
	}
	r.tx.data.jobs = append(r.tx.data.jobs, job)
	return true, nil
}

// ClaimQueued joins recipients like the SQL does: jobs whose user is unknown are skipped.
func (r notificationRepo) ClaimQueued(_ context.Context, now time.Time, limit int) ([]shared.ClaimedJob, error) {
	if err := r.tx.fault("Notifications.ClaimQueued"); err != nil {
		return nil, err
	}
	var due []notification.Job
	for _, j := range r.tx.data.jobs {
		if j.Status == notification.JobQueued && !j.RunAt.After(now) {
			due = append(due, j)
		}
	}
	sort.SliceStable(due, func(i, k int) bool { return due[i].RunAt.Before(due[k].RunAt) })

	var out []shared.ClaimedJob
	for _, j := range due {
		u, ok := r.tx.data.users[j.RecipientID]
		if !ok {
			continue
		}
		out = append(out, shared.ClaimedJob{Job: j, RecipientEmail: u.Email, RecipientName: u.Name})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r notificationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status notification.JobStatus, attempts int32, lastError *string, runAt time.Time) error {
	if err := r.tx.fault("Notifications.UpdateStatus"); err != nil {
		return err
	}
	for i := range r.tx.data.jobs {
		if r.tx.data.jobs[i].ID == id {
			r.tx.data.jobs[i].Status = status
			r.tx.data.jobs[i].Attempts = attempts
			r.tx.data.jobs[i].LastError = lastError
			r.tx.data.jobs[i].RunAt = runAt
			return nil
		}
	}
	return notFound("notification job")
}

type idempotencyRepo struct{ tx *memTx }

func (r idempotencyRepo) TryInsert(_ context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	if err := r.tx.fault("Idempotency.TryInsert"); err != nil {
		return false, err
	}
	k := idemKey{key: key, userID: userID}
	if _, ok := r.tx.data.idempotency[k]; ok {
		return false, nil
	}
	r.tx.data.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		Status:      shared.IdempotencyProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) Get(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.tx.data.idempotency[idemKey{key: key, userID: userID}]
	if !ok {
		return nil, notFound("idempotency key")
	}
	return &rec, nil
}

func (r idempotencyRepo) Complete(_ context.Context, key, userID uuid.UUID, _ string, bookingID uuid.UUID) error {
	k := idemKey{key: key, userID: userID}
	rec, ok := r.tx.data.idempotency[k]
	if !ok {
		return notFound("idempotency key")
	}
	rec.Status = shared.IdempotencyCompleted
	rec.ResultBookingID = &bookingID
	r.tx.data.idempotency[k] = rec
	return nil
}

func (r idempotencyRepo) ClaimExpired(_ context.Context, key, userID uuid.UUID, requestHash string, newExpiresAt, now time.Time) (bool, error) {
	k := idemKey{key: key, userID: userID}
	rec, ok := r.tx.data.idempotency[k]
	if !ok || !rec.ExpiresAt.Before(now) {
		return false, nil
	}
	rec.Status = shared.IdempotencyProcessing
	rec.RequestHash = requestHash
	rec.ResultBookingID = nil
	rec.ExpiresAt = newExpiresAt
	r.tx.data.idempotency[k] = rec
	return true, nil
}

func (r idempotencyRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	if err := r.tx.fault("Idempotency.DeleteExpired"); err != nil {
		return 0, err
	}
	var n int64
	for k, rec := range r.tx.data.idempotency {
		if rec.ExpiresAt.Before(before) {
			delete(r.tx.data.idempotency, k)
			n++
		}
	}
	return n, nil
}
