package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KJohnson82/MMPD/config"
	"github.com/KJohnson82/MMPD/internal/repository"
	"github.com/KJohnson82/MMPD/internal/service"
	"github.com/KJohnson82/MMPD/pkg/database"
	applogger "github.com/KJohnson82/MMPD/pkg/logger"
)

var configPath string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "directoryctl",
		Short:         "MMPD directory admin tool (migrate, export, user accounts)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (defaults to ./config/config.yaml)")

	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newUserCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// app 命令执行所需的公共依赖
type app struct {
	logger *zap.Logger
	db     *gorm.DB
	sqlDB  *sql.DB
}

func openApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, err
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	return &app{logger: logger, db: db, sqlDB: sqlDB}, nil
}

func (a *app) services() *service.Service {
	return service.NewService(repository.NewRepository(a.db), a.logger)
}

func (a *app) Close() {
	_ = a.sqlDB.Close()
	_ = a.logger.Sync()
}
