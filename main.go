package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/clinsync/triage-api/api"
	"github.com/clinsync/triage-api/external/advisory"
	"github.com/clinsync/triage-api/feed"
	"github.com/clinsync/triage-api/repo"
	"github.com/clinsync/triage-api/schema"
	"github.com/clinsync/triage-api/store"
)

var (
	server     *api.Server
	repository *repo.Repository
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("triage")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	var configFile string

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if repository != nil {
			log.Info("Unsubscribe change feed")
			repository.Stop()
		}

		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("initialized sentry")

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	err = mongoClient.Connect(context.Background())
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	database := viper.GetString("mongo.database")

	schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), database).IndexAll()
	log.WithField("prefix", "init").Info("ensured mongodb indexes")

	triageStore := store.NewMongoStore(mongoClient, database)

	// seed the built-in weight table on a fresh deployment
	if _, err := triageStore.GetWeightTable(); err == store.ErrNoWeightTable {
		if err := triageStore.PutWeightTable(schema.DefaultWeightTable()); err != nil {
			log.Panicf("seed weight table with error: %s", err)
		}
		log.WithField("prefix", "init").Info("seeded default weight table")
	} else if err != nil {
		log.Panicf("read weight table with error: %s", err)
	}

	// the shared repository subscribes before its first load so no
	// remote change can slip between snapshot and watch
	channel := feed.NewMongoChannel(mongoClient, database)
	repository = repo.New(channel)
	if err := repository.Start(); err != nil {
		log.Panicf("start repository with error: %s", err)
	}
	log.WithField("prefix", "init").Info("repository loaded and subscribed")

	advisoryClient := advisory.New(
		viper.GetString("advisory.endpoint"),
		viper.GetString("advisory.token"),
		nil)

	jwtSecret := viper.GetString("jwt.secret")
	if jwtSecret == "" {
		log.Panic("jwt secret is not configured")
	}

	// Init http server
	server = api.NewServer(
		repository,
		triageStore,
		[]byte(jwtSecret),
		advisoryClient)
	log.WithField("prefix", "init").Info("initialized http server")

	if err := server.Run(viper.GetString("server.address")); err != nil {
		log.Fatal(err)
	}
}
