package main

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"library-lending/pkg/common/config"
	"library-lending/pkg/core/library/model"
	"library-lending/pkg/core/library/recommend"
	dao "library-lending/pkg/core/library/repository/dao/impl"
	"library-lending/pkg/core/library/service"
	"library-lending/pkg/core/paging"
	"library-lending/pkg/web/router"
)

func main() {
	// 初始化配置
	cfg := config.Load()

	// 初始化数据库连接
	db, err := cfg.InitDB()
	if err != nil {
		hlog.Fatalf("Failed to initialize database: %v", err)
	}
	if cfg.Database.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			hlog.Fatalf("Failed to migrate database: %v", err)
		}
	}

	// 注入到DAO层
	users := dao.NewGormUserRepository(db)
	books := dao.NewGormBookRepository(db)
	loans := dao.NewGormLoanRepository(db)
	reviews := dao.NewGormReviewRepository(db)

	// 推荐查询: 手写 SQL 或内存计算
	sqlDB, err := config.SQLX(db)
	if err != nil {
		hlog.Fatalf("Failed to share connection pool: %v", err)
	}
	var query recommend.Query
	switch cfg.Recommend.Engine {
	case config.EngineMemory:
		query = recommend.NewMemoryQuery(service.SnapshotLoader(books, loans, reviews))
	default:
		prepared, err := recommend.PrepareSQLQuery(context.Background(), sqlDB)
		if err != nil {
			hlog.Fatalf("Failed to prepare recommendation queries: %v", err)
		}
		defer prepared.Close()
		query = prepared
	}
	hlog.Infof("recommendation engine: %s", cfg.Recommend.Engine)

	opts := service.Options{
		Paginator:   paging.New(cfg.Paging.DefaultPageSize),
		OverdueDays: cfg.Report.OverdueDays,
	}

	// 创建Hertz实例
	h := server.Default(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(int(cfg.Middleware.Security.MaxBodySize)),
	)

	// 注册路由
	router.RegisterAPIs(h, cfg, router.Services{
		Catalog:         service.NewCatalogService(opts, users, books, reviews),
		Loans:           service.NewLoanService(opts, users, books, loans),
		Recommendations: service.NewRecommendationService(opts, users, query),
		Database:        sqlDB,
	})

	// 启动服务
	h.Spin()
}
