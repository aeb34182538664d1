package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"optical-clinic-api/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// PatientCodePrefix is the human-readable prefix on every patient code.
	PatientCodePrefix = "VOR"

	// Redis key holding the last issued sequence number
	patientCodeSeqKey = "patient:code:seq"

	codeSyncTimeout = 5 * time.Second
)

// PatientCodeService issues sequential human-readable patient codes
// (VOR-00001, VOR-00002, ...). The sequence lives in Redis so concurrent
// registrations get distinct codes without a DB lock; on startup it is
// seeded from the highest code already persisted.
type PatientCodeService struct {
	db          *gorm.DB
	log         *logrus.Logger
	redisClient *redis.Client
}

func NewPatientCodeService(db *gorm.DB, log *logrus.Logger, redisClient *redis.Client) *PatientCodeService {
	return &PatientCodeService{
		db:          db,
		log:         log,
		redisClient: redisClient,
	}
}

// SyncFromDB seeds the Redis sequence from the highest patient code in
// the database. Called once at startup, before the server accepts
// registrations.
func (s *PatientCodeService) SyncFromDB(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, codeSyncTimeout)
	defer cancel()

	var lastCode string
	err := s.db.WithContext(ctx).
		Model(&entity.Patient{}).
		Select("MAX(patient_code)").
		Scan(&lastCode).Error
	if err != nil {
		return fmt.Errorf("failed to read last patient code: %w", err)
	}

	seq := lastSequence(lastCode)
	if err := s.redisClient.Set(ctx, patientCodeSeqKey, seq, 0).Err(); err != nil {
		return fmt.Errorf("failed to seed patient code sequence: %w", err)
	}

	s.log.Infof("Patient code sequence synced: last=%q next=%s", lastCode, FormatPatientCode(seq+1))
	return nil
}

// NextCode reserves and returns the next patient code.
func (s *PatientCodeService) NextCode(ctx context.Context) (string, error) {
	seq, err := s.redisClient.Incr(ctx, patientCodeSeqKey).Result()
	if err != nil {
		return "", fmt.Errorf("failed to reserve patient code: %w", err)
	}
	return FormatPatientCode(seq), nil
}

// FormatPatientCode renders a sequence number as a patient code.
func FormatPatientCode(seq int64) string {
	return fmt.Sprintf("%s-%05d", PatientCodePrefix, seq)
}

// lastSequence extracts the numeric sequence from the highest stored
// code. An empty or unparseable code resets the sequence to zero so the
// next issued code is 1; gaps in the sequence are tolerated.
func lastSequence(code string) int64 {
	if code == "" {
		return 0
	}
	parts := strings.SplitN(code, "-", 2)
	if len(parts) != 2 {
		return 0
	}
	n, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
