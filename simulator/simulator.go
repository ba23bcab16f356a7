package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
)

// Producer posts synthetic readings to the server on a fixed interval.
// Every failure is non-fatal: the loop logs and keeps going. A circuit
// breaker skips the POST entirely while the server looks down.
type Producer struct {
	serverURL string
	fleet     []SimSensor
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker
	rng       *rand.Rand
}

func NewProducer(serverURL string, fleet []SimSensor) *Producer {
	if len(fleet) == 0 {
		fleet = DefaultFleet
	}
	return &Producer{
		serverURL: serverURL,
		fleet:     fleet,
		client:    &http.Client{Timeout: 5 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "ingest",
			Timeout: 10 * time.Second,
		}),
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WaitReady polls the server's health endpoint with exponential backoff
// until it answers or the backoff gives up.
func (p *Producer) WaitReady(ctx context.Context) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.serverURL+"/healthz", nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("health check HTTP %d", resp.StatusCode)
		}
		return nil
	}, backoff.WithContext(bo, ctx))
}

// Run sends one reading per tick until the context is cancelled.
func (p *Producer) Run(ctx context.Context, interval time.Duration) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
			sensor := p.fleet[p.rng.Intn(len(p.fleet))]
			reading := Generate(p.rng, sensor)
			if err := p.send(ctx, reading); err != nil {
				log.Printf("simulator: send failed: %v", err)
				continue
			}
			log.Printf("simulator: sent %s soil_moisture=%.2f at %s",
				reading.SensorID, reading.SoilMoisture, reading.Timestamp)
		}
	}
}

func (p *Producer) send(ctx context.Context, reading ReadingPayload) error {
	payload, err := json.Marshal(reading)
	if err != nil {
		return err
	}

	_, err = p.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.serverURL+"/ingest", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := p.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return nil, fmt.Errorf("ingest HTTP %d: %s", resp.StatusCode, string(body))
		}
		return nil, nil
	})
	return err
}
