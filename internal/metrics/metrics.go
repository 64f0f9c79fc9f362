// Package metrics содержит Prometheus-метрики делегирования составных блоков.
// Метрики регистрируются в глобальном регистре при импорте пакета.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annel0/stone-variants/internal/logging"
)

const namespace = "osv"

var (
	// Delegations вызовы хуков обернутых блоков
	Delegations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delegations_total",
		Help:      "Число делегированных вызовов хуков по хуку и роли блока.",
	}, []string{"hook", "role"})

	// Redirects переписанные перехватчиком обращения к миру
	Redirects = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redirects_total",
		Help:      "Число обращений к миру, переписанных перехватчиком (read/write/tick/notify).",
	}, []string{"kind"})

	// RandomTicksSkipped случайные тики, пропущенные из-за отсутствия состояния
	RandomTicksSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "random_ticks_skipped_total",
		Help:      "Случайные тики, пропущенные потому что в позиции нет состояния.",
	})

	// VariantsRegistered зарегистрированные варианты руд
	VariantsRegistered = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "variants_registered",
		Help:      "Количество зарегистрированных вариантов руд.",
	})

	// TicksExecuted выполненные тики хоста по виду
	TicksExecuted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticks_executed_total",
		Help:      "Выполненные тики блоков (scheduled/random).",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(Delegations, Redirects, RandomTicksSkipped, VariantsRegistered, TicksExecuted)
}

// Handler HTTP-обработчик /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartHTTP запускает HTTP-эндпоинт Prometheus на указанном адресе (например, ":2112").
// Метод неблокирующий: HTTP-сервер стартует в отдельной горутине.
func StartHTTP(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logging.LogInfo("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.LogError("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	return srv
}
