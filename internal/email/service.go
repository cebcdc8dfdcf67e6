package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
	"github.com/alvimrfg/sistema-socio-40graus/internal/logger"
	"github.com/alvimrfg/sistema-socio-40graus/internal/metrics"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3

	TypeBookingConfirmation = "booking_confirmation"
	TypeBookingCancellation = "booking_cancellation"
)

type EmailJob struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Config struct {
	From     string
	FromName string
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Service queues member notifications in redis and delivers them over SMTP
// from a single worker started with Start.
type Service struct {
	redis      *redis.Client
	cfg        Config
	send       sendFunc
	retryDelay time.Duration
	// readBackoff is the pause after a failed queue read so an unreachable
	// redis does not spin the worker.
	readBackoff time.Duration
}

func New(cfg Config, rdb *redis.Client) *Service {
	return &Service{
		redis:      rdb,
		cfg:        cfg,
		send:        smtp.SendMail,
		retryDelay:  5 * time.Second,
		readBackoff: time.Second,
	}
}

func (s *Service) enqueue(ctx context.Context, job EmailJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", job.To, err)
		metrics.RecordEmail(job.Type, "queue_failed")
		return err
	}

	logger.Info("email queued", "type", job.Type, "to", job.To)
	return nil
}

func (s *Service) Send(ctx context.Context, emailType, to, name, subject, body string) error {
	return s.enqueue(ctx, EmailJob{
		Type:    emailType,
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	})
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Email service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if errors.Is(err, redis.Nil) || ctx.Err() != nil {
		return
	}
	if err != nil {
		logger.Error("email queue read failed", "error", err.Error())
		select {
		case <-ctx.Done():
		case <-time.After(s.readBackoff):
		}
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	s.deliver(ctx, job)
	metrics.EmailQueueLength.Set(float64(s.QueueLength(ctx)))
}

// deliver makes one attempt. A failed job goes back to the queue until it
// has been tried maxTries times, then moves to the failed list.
func (s *Service) deliver(ctx context.Context, job EmailJob) {
	job.Tries++
	logger.Debug("sending email", "to", job.To, "attempt", job.Tries)

	if err := s.sendNow(job); err != nil {
		logger.Error("email delivery failed", "to", job.To, "attempt", job.Tries, "error", err.Error())

		if job.Tries < maxTries {
			select {
			case <-ctx.Done():
			case <-time.After(s.retryDelay):
			}
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			metrics.RecordEmail(job.Type, "retry")
		} else {
			s.saveFailed(job, err)
			metrics.RecordEmail(job.Type, "failed")
		}
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Info("email sent", "type", job.Type, "to", job.To)
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n"
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.cfg.SMTPUser != "" && s.cfg.SMTPPass != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	return s.send(addr, auth, s.cfg.From, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Error("email moved to failed queue", "to", job.To, "tries", job.Tries)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func formatStay(iv calendar.Interval) string {
	return fmt.Sprintf("check-in %s, check-out %s (%d diárias)",
		iv.Start.Format("02/01/2006"), iv.End.Format("02/01/2006"), iv.Days())
}

func (s *Service) SendBookingConfirmation(ctx context.Context, to, name, accommodationType string, iv calendar.Interval) error {
	subject := "Reserva confirmada - " + accommodationType
	body := fmt.Sprintf(`Olá %s,

Sua reserva está confirmada.

Acomodação: %s
Período: %s

Até breve!

- %s`, name, accommodationType, formatStay(iv), s.cfg.FromName)

	return s.Send(ctx, TypeBookingConfirmation, to, name, subject, body)
}

func (s *Service) SendBookingCancellation(ctx context.Context, to, name, accommodationType string, iv calendar.Interval) error {
	subject := "Reserva cancelada - " + accommodationType
	body := fmt.Sprintf(`Olá %s,

Sua reserva foi cancelada e as diárias voltaram para o seu saldo.

Acomodação: %s
Período: %s

- %s`, name, accommodationType, formatStay(iv), s.cfg.FromName)

	return s.Send(ctx, TypeBookingCancellation, to, name, subject, body)
}
