package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatflowers/bankgate/pkg/config"
	"github.com/fatflowers/bankgate/pkg/logctx"
	"github.com/fatflowers/bankgate/pkg/metrics"
	"github.com/fatflowers/bankgate/pkg/tool"
	"github.com/fatflowers/bankgate/pkg/types"

	json "github.com/goccy/go-json"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const responseTimeLayout = "20060102150405"

// ErrSerialize is returned when a notification cannot be encoded for storage.
var ErrSerialize = errors.New("serialize notification")

// PartnerFinder resolves a partner by its bank code.
type PartnerFinder interface {
	Find(code string) (types.Partner, bool)
}

// IdempotentStore records a notification payload under (tokenKey, partnerCode).
// Writing the same pair again overwrites the previous payload.
type IdempotentStore interface {
	Put(ctx context.Context, partnerCode, tokenKey string, payload []byte) error
}

// Result is the outcome of one pipeline run.
type Result struct {
	Outcome    Outcome
	Ack        *PaymentAcknowledgement
	Violations []FieldViolation
	// Payload is the stored encoding; nil when the run stopped before serialization.
	Payload []byte
	Stored  bool
}

// Pipeline validates, verifies, stores and acknowledges payment notifications.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	partners     PartnerFinder
	store        IdempotentStore
	signer       *Signer
	log          *zap.SugaredLogger
	storeTimeout time.Duration
	signErrors   bool
	loc          *time.Location

	now     func() time.Time
	newID   func() string
	marshal func(v any) ([]byte, error)
}

func NewPipeline(cfg *config.Config, log *zap.SugaredLogger, partners PartnerFinder, store IdempotentStore) (*Pipeline, error) {
	signer, err := NewSigner(cfg.Verification.SigningMode)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	log.Infow("verification pipeline ready",
		"signing_mode", signer.Mode(),
		"sign_error_responses", cfg.Verification.SignErrorResponses,
		"store_timeout", cfg.Store.Timeout.String(),
	)
	return &Pipeline{
		partners:     partners,
		store:        store,
		signer:       signer,
		log:          log,
		storeTimeout: cfg.Store.Timeout,
		signErrors:   cfg.Verification.SignErrorResponses,
		loc:          loc,
		now:          time.Now,
		newID:        tool.GenerateRandomID,
		marshal:      json.Marshal,
	}, nil
}

// Signer exposes the digest functions used by the pipeline.
func (p *Pipeline) Signer() *Signer { return p.signer }

// Process runs the gates in order and always returns an acknowledgement.
// The first failing gate decides the outcome; later gates are skipped.
func (p *Pipeline) Process(ctx context.Context, n *PaymentNotification) (res *Result) {
	start := time.Now()
	log := logctx.FromCtx(ctx, p.log).With(n.LogFields()...)

	defer func() {
		if r := recover(); r != nil {
			log.Errorw("notify_pipeline_panic", "panic", fmt.Sprint(r))
			res = &Result{Outcome: OutcomeStorageFailure, Ack: p.unsigned(OutcomeStorageFailure)}
		}
		metrics.ObserveBusinessProcess("notify", res.Outcome.Code(), start)
	}()

	violations := Validate(n)
	if len(violations) > 0 {
		for _, v := range violations {
			log.Warnw("notify_invalid_field", "field", v.Field, "reason", v.Reason)
		}
		return &Result{Outcome: OutcomeInvalidInput, Ack: p.unsigned(OutcomeInvalidInput), Violations: violations}
	}

	partner, ok := p.partners.Find(n.BankCode)
	if !ok {
		log.Infow("notify_partner_not_found")
		return &Result{Outcome: OutcomePartnerNotFound, Ack: p.unsigned(OutcomePartnerNotFound)}
	}

	matched, err := p.signer.VerifyRequest(n, partner.Secret)
	if err != nil {
		log.Errorw("notify_checksum_compute_failed", "error", err.Error())
		return p.fail(log, OutcomeInvalidChecksum, partner.Secret, nil)
	}
	if !matched {
		log.Infow("notify_checksum_mismatch")
		return p.fail(log, OutcomeInvalidChecksum, partner.Secret, nil)
	}

	payload, err := p.marshal(n)
	if err != nil {
		log.Errorw("notify_serialize_failed", "error", fmt.Errorf("%w: %w", ErrSerialize, err).Error())
		return p.fail(log, OutcomeStorageFailure, partner.Secret, nil)
	}

	if err := p.put(ctx, n, payload); err != nil {
		log.Errorw("notify_store_failed", "error", err.Error())
		return p.fail(log, OutcomeStorageFailure, partner.Secret, payload)
	}
	log.Infow("notify_stored")

	ack, err := p.signed(OutcomeSuccess, partner.Secret)
	if err != nil {
		log.Errorw("notify_sign_response_failed", "error", err.Error())
		return &Result{Outcome: OutcomeStorageFailure, Ack: p.unsigned(OutcomeStorageFailure), Payload: payload, Stored: true}
	}
	return &Result{Outcome: OutcomeSuccess, Ack: ack, Payload: payload, Stored: true}
}

// put performs the single bounded store write. No retries happen here.
func (p *Pipeline) put(ctx context.Context, n *PaymentNotification, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("request cancelled before store write: %w", err)
	}
	putCtx, cancel := context.WithTimeout(ctx, p.storeTimeout)
	defer cancel()
	return p.store.Put(putCtx, n.BankCode, n.TokenKey, payload)
}

// fail builds an error result once the partner secret is known.
func (p *Pipeline) fail(log *zap.SugaredLogger, o Outcome, secret string, payload []byte) *Result {
	res := &Result{Outcome: o, Payload: payload}
	if !p.signErrors {
		res.Ack = p.unsigned(o)
		return res
	}
	ack, err := p.signed(o, secret)
	if err != nil {
		log.Warnw("notify_sign_error_response_failed", "outcome", o.String(), "error", err.Error())
		ack = p.unsigned(o)
	}
	res.Ack = ack
	return res
}

func (p *Pipeline) unsigned(o Outcome) *PaymentAcknowledgement {
	return &PaymentAcknowledgement{
		Code:         o.Code(),
		Message:      o.Message(),
		ResponseID:   p.newID(),
		ResponseTime: p.now().In(p.loc).Format(responseTimeLayout),
	}
}

func (p *Pipeline) signed(o Outcome, secret string) (*PaymentAcknowledgement, error) {
	ack := p.unsigned(o)
	sum, err := p.signer.ResponseDigest(ack.Code, ack.Message, ack.ResponseID, ack.ResponseTime, secret)
	if err != nil {
		return nil, err
	}
	ack.CheckSum = lo.ToPtr(sum)
	return ack, nil
}
