package initializers

import (
	"context"
	"time"

	"github.com/sajib4386/Asset-verse-Server/config"
	"github.com/sajib4386/Asset-verse-Server/db"
	"github.com/sajib4386/Asset-verse-Server/fiberlog"
	accounthandler "github.com/sajib4386/Asset-verse-Server/lib/account"
	affiliationhandler "github.com/sajib4386/Asset-verse-Server/lib/affiliation"
	assethandler "github.com/sajib4386/Asset-verse-Server/lib/asset"
	assignmenthandler "github.com/sajib4386/Asset-verse-Server/lib/assignment"
	billinghandler "github.com/sajib4386/Asset-verse-Server/lib/billing"
	xlsexport "github.com/sajib4386/Asset-verse-Server/lib/export/xls"
	reconcileworker "github.com/sajib4386/Asset-verse-Server/lib/reconcile"
	requesthandler "github.com/sajib4386/Asset-verse-Server/lib/request"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	accounthandler.NewHandler(db.DB)
	assethandler.NewHandler(db.DB)
	requesthandler.NewHandler(db.DB)
	affiliationhandler.NewHandler(db.DB)
	assignmenthandler.NewHandler(db.DB)
	billinghandler.NewHandler(db.DB)
	xlsexport.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	reconcileworker.StartWorker(ctx, db.DB,
		time.Duration(config.Conf.Reconcile.FirstRunDelayInSec)*time.Second,
		time.Duration(config.Conf.Reconcile.RunIntervalInSec)*time.Second)
}
