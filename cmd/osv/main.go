package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/stone-variants/internal/config"
	"github.com/annel0/stone-variants/internal/logging"
	"github.com/annel0/stone-variants/internal/metrics"
	"github.com/annel0/stone-variants/internal/registry"
	"github.com/annel0/stone-variants/internal/storage"
	"github.com/annel0/stone-variants/internal/vec"
	"github.com/annel0/stone-variants/internal/world"
	_ "github.com/annel0/stone-variants/internal/world/block/implementations"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (по умолчанию OSV_CONFIG)")
	ticks := flag.Int("ticks", 0, "выполнить N тиков и выйти (0 означает работать до сигнала)")
	withMetrics := flag.Bool("metrics", true, "поднять HTTP эндпоинт Prometheus")
	dataDir := flag.String("data", "", "каталог хранилища мира (перекрывает world.data_dir)")
	logDir := flag.String("logs", "logs", "каталог логов")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitLogger(*logDir); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseLogger()
	defer logging.GetLoggerManager().CloseAll()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	logging.SetConsoleLevel(logging.ParseLevel(cfg.LogLevel))
	if *dataDir != "" {
		cfg.World.DataDir = *dataDir
	}

	if err := run(cfg, *ticks, *withMetrics); err != nil {
		logging.LogError("❌ %v", err)
		logging.CloseLogger()
		os.Exit(1)
	}
}

func run(cfg *config.Config, ticks int, withMetrics bool) error {
	regLog := logging.GetRegistryLogger()
	worldLog := logging.GetWorldLogger()

	// === РЕГИСТРАЦИЯ ВАРИАНТОВ ===
	res, err := registry.Setup(cfg, registry.Options{})
	if err != nil {
		return fmt.Errorf("регистрация вариантов: %w", err)
	}
	for _, v := range res.Variants {
		regLog.Info("Вариант %s: руда %s в %s", v.Name(), v.Foreground().Name(), v.BackgroundBlock().Name())
	}

	// === ХРАНИЛИЩЕ ===
	store, err := storage.NewWorldStorage(cfg.World.DataDir)
	if err != nil {
		return fmt.Errorf("хранилище мира: %w", err)
	}
	defer store.Close()

	wm := world.NewWorldManager(cfg.World)
	if wm.ID, err = store.WorldID("overworld"); err != nil {
		return err
	}
	store.Attach(wm)
	for _, v := range res.Variants {
		wm.Generator().AddVariant(v)
	}
	wm.SetTickObserver(func(executed, random int) {
		worldLog.Trace("Тик %d: запланированных %d, случайных %d", wm.Time(), executed, random)
	})

	r := cfg.World.Radius
	for x := -r; x <= r; x++ {
		for z := -r; z <= r; z++ {
			if _, err := wm.LoadChunk(vec.Vec2{X: x, Y: z}); err != nil {
				return fmt.Errorf("чанк (%d, %d): %w", x, z, err)
			}
		}
	}
	worldLog.Info("Мир %s: загружено %d чанков, вариантов %d", wm.ID, len(wm.Chunks()), len(res.Variants))

	if withMetrics {
		srv := metrics.StartHTTP(fmt.Sprintf(":%d", cfg.Metrics.GetMetricsPort()))
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	// === ИГРОВОЙ ЦИКЛ ===
	if ticks > 0 {
		for i := 0; i < ticks; i++ {
			wm.Tick()
		}
		logging.LogInfo("Выполнено %d тиков", ticks)
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		logging.LogInfo("✅ Мир запущен, ожидание сигнала завершения...")
		wm.Run(ctx, 50*time.Millisecond, 30*time.Second)
		logging.LogInfo("📡 Получен сигнал, завершение работы...")
	}

	if err := wm.SaveWorld(true); err != nil {
		return fmt.Errorf("сохранение мира: %w", err)
	}
	logging.LogInfo("👋 Мир сохранен, выход")
	return nil
}
