// Package utils предоставляет вспомогательные функции для graceful shutdown.
//
// Graceful Shutdown - корректное завершение при SIGINT (Ctrl+C) или SIGTERM.
//
// Использование:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer utils.SetupGracefulShutdown(cancel)()
//
// TUI режим сам обрабатывает Ctrl+C через Bubble Tea, поэтому функция
// используется командами serve и analyze.
package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupGracefulShutdown отменяет контекст при получении SIGINT/SIGTERM.
//
// Возвращает функцию очистки: она снимает обработчик сигналов и закрывает лог.
//
// Rule 11: Уважает context.Context для распространения отмены.
func SetupGracefulShutdown(cancel context.CancelFunc) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	stop := make(chan struct{})
	go func() {
		select {
		case sig := <-sigChan:
			Info("Received signal, shutting down gracefully", "signal", sig.String())
			cancel()
		case <-stop:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(stop)
		Close()
	}
}

// SetupGracefulShutdownWithContext создаёт контекст и настраивает graceful shutdown.
//
//	ctx, shutdown := SetupGracefulShutdownWithContext(parent)
//	defer shutdown()
func SetupGracefulShutdownWithContext(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	shutdown := SetupGracefulShutdown(cancel)
	return ctx, func() {
		shutdown()
		cancel()
	}
}
