package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/ntp"
	logging "github.com/inconshreveable/log15"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"

	cmdcommon "boscoin.io/votechain/cmd/votechain/common"
	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/ledger"
	"boscoin.io/votechain/lib/metrics"
	"boscoin.io/votechain/lib/network"
	"boscoin.io/votechain/lib/network/httpcache"
	"boscoin.io/votechain/lib/node"
	"boscoin.io/votechain/lib/storage"
)

const (
	defaultNetwork  string      = "http"
	defaultPort     int         = 12345
	defaultHost     string      = "0.0.0.0"
	defaultLogLevel logging.Lvl = logging.LvlInfo
)

var (
	flagNodeID         string = common.GetENVValue("VOTECHAIN_NODE_ID", "")
	flagNetworkID      string = common.GetENVValue("VOTECHAIN_NETWORK_ID", "")
	flagProgramID      string = common.GetENVValue("VOTECHAIN_PROGRAM_ID", common.DefaultProgramID)
	flagLogLevel       string = common.GetENVValue("VOTECHAIN_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput      string = common.GetENVValue("VOTECHAIN_LOG_OUTPUT", "")
	flagVerbose        bool   = common.GetENVValue("VOTECHAIN_VERBOSE", "0") == "1"
	flagEndpointString string = common.GetENVValue(
		"VOTECHAIN_ENDPOINT",
		fmt.Sprintf("%s://%s:%d", defaultNetwork, defaultHost, defaultPort),
	)
	flagStorageConfigString string
	flagTLSCertFile         string = common.GetENVValue("VOTECHAIN_TLS_CERT", "votechain.crt")
	flagTLSKeyFile          string = common.GetENVValue("VOTECHAIN_TLS_KEY", "votechain.key")
	flagIdleTimeout         string = common.GetENVValue("VOTECHAIN_IDLE_TIMEOUT", "3s")
	flagCacheAdapter        string = common.GetENVValue("VOTECHAIN_CACHE", httpcache.AdapterMemory)
	flagCachePoolSize       string = common.GetENVValue("VOTECHAIN_CACHE_POOL_SIZE", strconv.Itoa(httpcache.DefaultPoolSize))
	flagCacheTTL            string = common.GetENVValue("VOTECHAIN_CACHE_TTL", "0s")
	flagCacheRedis          cmdcommon.ListFlags
	flagValidWindow         bool   = common.GetENVValue("VOTECHAIN_VALID_WINDOW", "1") == "1"
	flagEnforceWindow       bool   = common.GetENVValue("VOTECHAIN_ENFORCE_WINDOW", "1") == "1"
	flagOneVotePerSigner    bool   = common.GetENVValue("VOTECHAIN_ONE_VOTE_PER_SIGNER", "0") == "1"
	flagNTPServer           string = common.GetENVValue("VOTECHAIN_NTP_SERVER", "")
	flagExposeMetrics       bool   = common.GetENVValue("VOTECHAIN_METRICS", "1") == "1"
)

var (
	nodeCmd *cobra.Command

	config        common.Config
	policy        ledger.Policy
	nodeEndpoint  *url.URL
	storageConfig *storage.Config
	cacheConfig   httpcache.Config
	clockOffset   time.Duration
	logLevel      logging.Lvl
	logHandler    logging.Handler
	log           logging.Logger = common.NopLogger()
)

func init() {
	var err error

	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run votechain node",
		Run: func(c *cobra.Command, args []string) {
			parseFlagsNode()

			runNode()
		},
	}

	// storage
	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--storage", err)
	}
	flagStorageConfigString = common.GetENVValue("VOTECHAIN_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	nodeCmd.Flags().StringVar(&flagNodeID, "node-id", flagNodeID, "node id; random if not given")
	nodeCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	nodeCmd.Flags().StringVar(&flagProgramID, "program-id", flagProgramID, "program id mixed into the derived addresses")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	nodeCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	nodeCmd.Flags().StringVar(&flagEndpointString, "endpoint", flagEndpointString, "endpoint uri to listen on ('http://0.0.0.0:12345')")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri, 'file:///path' or 'memory://'")
	nodeCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file, for https endpoint")
	nodeCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file, for https endpoint")
	nodeCmd.Flags().StringVar(&flagIdleTimeout, "idle-timeout", flagIdleTimeout, "idle timeout of the http connections")
	nodeCmd.Flags().StringVar(&flagCacheAdapter, "cache", flagCacheAdapter, "receipt cache, {none, memory, redis}")
	nodeCmd.Flags().StringVar(&flagCachePoolSize, "cache-pool-size", flagCachePoolSize, "number of cached responses of the memory cache")
	nodeCmd.Flags().StringVar(&flagCacheTTL, "cache-ttl", flagCacheTTL, "expiration of the cached responses; '0s' keeps them")
	nodeCmd.Flags().Var(&flagCacheRedis, "cache-redis", "redis shard, '<name>=<host:port>'; can be repeated")
	nodeCmd.Flags().BoolVar(&flagValidWindow, "valid-window", flagValidWindow, "reject polls whose start is not before the end")
	nodeCmd.Flags().BoolVar(&flagEnforceWindow, "enforce-window", flagEnforceWindow, "reject votes outside of the poll window")
	nodeCmd.Flags().BoolVar(&flagOneVotePerSigner, "one-vote-per-signer", flagOneVotePerSigner, "reject a second vote of the same signer in a poll")
	nodeCmd.Flags().StringVar(&flagNTPServer, "ntp-server", flagNTPServer, "ntp server to correct the ledger clock with, eg. 'pool.ntp.org'")
	nodeCmd.Flags().BoolVar(&flagExposeMetrics, "metrics", flagExposeMetrics, "expose prometheus metrics on '/metrics'")

	nodeCmd.MarkFlagRequired("network-id")

	rootCmd.AddCommand(nodeCmd)
}

func parseFlagRedisAddrs(l []string) (addrs map[string]string, err error) {
	addrs = map[string]string{}
	for _, s := range l {
		parsed := strings.SplitN(s, "=", 2)
		if len(parsed) != 2 || len(parsed[0]) < 1 || len(parsed[1]) < 1 {
			return nil, fmt.Errorf("'<name>=<host:port>' expected: '%s'", s)
		}
		if _, found := addrs[parsed[0]]; found {
			return nil, fmt.Errorf("duplicated shard name found: '%s'", parsed[0])
		}
		addrs[parsed[0]] = parsed[1]
	}

	return
}

func parseFlagsNode() {
	var err error

	if len(flagNetworkID) < 1 {
		cmdcommon.PrintFlagsError(nodeCmd, "--network-id", errors.New("--network-id must be given"))
	}
	if len(flagProgramID) < 1 {
		cmdcommon.PrintFlagsError(nodeCmd, "--program-id", errors.New("--program-id must not be empty"))
	}
	if len(flagNodeID) < 1 {
		flagNodeID = common.GenerateUUID()
	}

	config = common.NewConfig([]byte(flagNetworkID))
	config.ProgramID = []byte(flagProgramID)

	policy = ledger.Policy{
		RequireValidWindow:  flagValidWindow,
		EnforceVotingWindow: flagEnforceWindow,
		OneVotePerSigner:    flagOneVotePerSigner,
	}

	if nodeEndpoint, err = url.Parse(flagEndpointString); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--endpoint", err)
	}

	queries := nodeEndpoint.Query()
	if strings.ToLower(nodeEndpoint.Scheme) == "https" {
		if _, err = os.Stat(flagTLSCertFile); os.IsNotExist(err) {
			cmdcommon.PrintFlagsError(nodeCmd, "--tls-cert", err)
		}
		if _, err = os.Stat(flagTLSKeyFile); os.IsNotExist(err) {
			cmdcommon.PrintFlagsError(nodeCmd, "--tls-key", err)
		}
		queries.Set("TLSCertFile", flagTLSCertFile)
		queries.Set("TLSKeyFile", flagTLSKeyFile)
	}
	if _, err = time.ParseDuration(flagIdleTimeout); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--idle-timeout", err)
	}
	queries.Set("IdleTimeout", flagIdleTimeout)
	nodeEndpoint.RawQuery = queries.Encode()

	if _, err = network.NewHTTP2NetworkConfigFromEndpoint(flagNodeID, nodeEndpoint); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--endpoint", err)
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--storage", err)
	}

	cacheConfig = httpcache.Config{Adapter: flagCacheAdapter}
	if cacheConfig.PoolSize, err = strconv.Atoi(flagCachePoolSize); err != nil || cacheConfig.PoolSize < 1 {
		cmdcommon.PrintFlagsError(nodeCmd, "--cache-pool-size", fmt.Errorf("positive integer expected: '%s'", flagCachePoolSize))
	}
	if cacheConfig.TTL, err = time.ParseDuration(flagCacheTTL); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--cache-ttl", err)
	}
	if cacheConfig.RedisAddrs, err = parseFlagRedisAddrs(flagCacheRedis); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--cache-redis", err)
	}
	switch cacheConfig.Adapter {
	case httpcache.AdapterNone, httpcache.AdapterMemory:
	case httpcache.AdapterRedis:
		if len(cacheConfig.RedisAddrs) < 1 {
			cmdcommon.PrintFlagsError(nodeCmd, "--cache-redis", errors.New("redis cache needs at least one shard"))
		}
	default:
		cmdcommon.PrintFlagsError(nodeCmd, "--cache", fmt.Errorf("unknown cache adapter: '%s'", cacheConfig.Adapter))
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		cmdcommon.PrintFlagsError(nodeCmd, "--log-level", err)
	}

	logHandler = logging.StreamHandler(os.Stdout, common.DefaultLogFormat())

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, logging.JsonFormat()); err != nil {
			cmdcommon.PrintFlagsError(nodeCmd, "--log-output", err)
		}
	}

	log = logging.New("module", "main")
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	ledger.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)
	node.SetLogging(logLevel, logHandler)

	if len(flagNTPServer) > 0 {
		var response *ntp.Response
		if response, err = ntp.Query(flagNTPServer); err != nil {
			cmdcommon.PrintFlagsError(nodeCmd, "--ntp-server", err)
		}
		clockOffset = response.ClockOffset
		log.Debug("clock offset from ntp server", "server", flagNTPServer, "offset", clockOffset)
	}

	log.Info("Starting votechain")

	// print flags
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tnode-id", flagNodeID)
	parsedFlags = append(parsedFlags, "\n\tnetwork-id", flagNetworkID)
	parsedFlags = append(parsedFlags, "\n\tprogram-id", flagProgramID)
	parsedFlags = append(parsedFlags, "\n\tendpoint", nodeEndpoint.String())
	parsedFlags = append(parsedFlags, "\n\tstorage", storageConfig.String())
	parsedFlags = append(parsedFlags, "\n\tcache", flagCacheAdapter)
	parsedFlags = append(parsedFlags, "\n\tpolicy", policy)
	parsedFlags = append(parsedFlags, "\n\tntp-server", flagNTPServer)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)

	log.Debug("parsed flags:", parsedFlags...)

	if flagVerbose {
		http2.VerboseLogs = true
	}
}

func runNode() {
	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)

		os.Exit(1)
	}
	defer st.Close()

	l := ledger.NewLedger(st, config, policy)
	if clockOffset != 0 {
		l.SetClock(common.NewOffsetClock(clockOffset))
	}

	networkConfig, err := network.NewHTTP2NetworkConfigFromEndpoint(flagNodeID, nodeEndpoint)
	if err != nil {
		log.Crit("failed to create network", "error", err)

		os.Exit(1)
	}
	nt := network.NewHTTP2Network(networkConfig)

	if flagExposeMetrics {
		metrics.InitPrometheusMetrics()
	}

	conf := node.NewNodeRunnerConfiguration(flagNodeID)
	conf.Cache = cacheConfig
	conf.ExposeMetrics = flagExposeMetrics

	// Execution group.
	var g run.Group
	{
		nr, err := node.NewNodeRunner(conf, l, nt)
		if err != nil {
			log.Crit("failed to create node", "error", err)

			os.Exit(1)
		}

		g.Add(func() error {
			if err := nr.Start(); err != nil {
				log.Crit("failed to start node", "error", err)
				return err
			}
			return nil
		}, func(error) {
			nr.Stop()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return cmdcommon.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		log.Info("node stopped", "reason", err)
	}
}
