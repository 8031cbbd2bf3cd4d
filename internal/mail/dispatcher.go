package mail

import (
	"sync"

	"medoka/internal/logs"
)

type job struct {
	kind string
	to   string
	send func() error
}

// Dispatcher развязывает отправку писем и HTTP-ответ: задачи идут в
// буферизованную очередь, воркер шлёт их в фоне. Ошибки доставки не
// всплывают к клиенту, но обязательно попадают в лог.
type Dispatcher struct {
	mailer Mailer
	jobs   chan job
	wg     sync.WaitGroup

	closeOnce sync.Once
}

func NewDispatcher(m Mailer, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	d := &Dispatcher{
		mailer: m,
		jobs:   make(chan job, queueSize),
	}
	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		if err := j.send(); err != nil {
			logs.Logger.Errorf("mail delivery failed: kind=%s to=%s err=%v", j.kind, j.to, err)
		}
	}
}

// enqueue не блокирует путь запроса: при переполненной очереди задача
// отбрасывается с ошибкой в логе.
func (d *Dispatcher) enqueue(j job) {
	select {
	case d.jobs <- j:
	default:
		logs.Logger.Errorf("mail queue full, dropping: kind=%s to=%s", j.kind, j.to)
	}
}

func (d *Dispatcher) VerificationCode(to string, code int) {
	d.enqueue(job{
		kind: "verification",
		to:   to,
		send: func() error { return d.mailer.SendVerificationCode(to, code) },
	})
}

func (d *Dispatcher) RecoveryLink(to, url string) {
	d.enqueue(job{
		kind: "recovery",
		to:   to,
		send: func() error { return d.mailer.SendRecoveryLink(to, url) },
	})
}

// Close дожидается доотправки очереди (на graceful shutdown).
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.jobs) })
	d.wg.Wait()
}
