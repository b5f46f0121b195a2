package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"cardroom.io/holdem/game"
	"cardroom.io/holdem/logging"
	"cardroom.io/holdem/manager"
	"cardroom.io/holdem/nats"
	"cardroom.io/holdem/rest"
	"cardroom.io/holdem/store"
	"cardroom.io/holdem/util"
	"cardroom.io/holdem/util/random"
)

var runServer *bool
var runGameScriptTests *bool
var gameScriptsFileOrDir *string
var mainLogger = logging.GetZeroLogger("main::main", nil)

func init() {
	runServer = flag.Bool("server", true, "runs the table server")
	runGameScriptTests = flag.Bool("script-tests", false, "runs hand script tests")
	gameScriptsFileOrDir = flag.String("game-script", "game/testdata/scripts", "hand script file or directory")
}

func main() {
	// Global random seed used by every deck shuffle.
	rand.Seed(random.NewSeed())

	err := run()
	if err != nil {
		mainLogger.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func run() error {
	logLevel := util.Env.GetZeroLogLogLevel()
	fmt.Printf("Setting log level to %s\n", logLevel)
	zerolog.SetGlobalLevel(logLevel)
	flag.Parse()

	if *runGameScriptTests {
		return game.RunScripts(*gameScriptsFileOrDir)
	}

	if !*runServer {
		return nil
	}

	st, err := buildStore()
	if err != nil {
		return err
	}

	broadcaster, err := nats.NewBroadcaster(util.Env.GetNatsURL())
	if err != nil {
		mainLogger.Warn().Msgf("NATS unavailable (%v), running without broadcast", err)
		broadcaster = nats.NewNoopBroadcaster()
	} else {
		defer broadcaster.Close()
	}

	actionTimeout := time.Duration(util.Env.GetActionTimeoutSec()) * time.Second
	m, err := manager.NewManager(st, broadcaster, actionTimeout)
	if err != nil {
		return errors.Wrap(err, "Error while creating the table manager")
	}

	server := rest.NewServer(m, broadcaster)
	port := util.Env.GetHTTPPort()
	mainLogger.Info().Msgf("Serving the table API on port %d", port)
	return server.Run(port)
}

func buildStore() (store.Store, error) {
	switch method := util.Env.GetPersistMethod(); method {
	case "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		redisURL := fmt.Sprintf("%s:%d", util.Env.GetRedisHost(), util.Env.GetRedisPort())
		return store.NewRedisStore(redisURL, util.Env.GetRedisPW(), util.Env.GetRedisDB()), nil
	default:
		return nil, fmt.Errorf("Unknown PERSIST_METHOD %q", method)
	}
}
