// Command satcity-devnet is a local operator console for the GameEscrow and
// Verifier contracts: it opens (or creates) a LevelDB-backed state
// directory, wires both contracts against it, and executes a single opcode
// invocation per run. It is test/operational scaffolding — none of it
// changes on-chain semantics, which live entirely in the contracts/ and
// alkane/ packages.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/Sprimage/SatCity/alkane"
	"github.com/Sprimage/SatCity/alkane/storage"
	"github.com/Sprimage/SatCity/config"
	"github.com/Sprimage/SatCity/contracts/escrow"
	"github.com/Sprimage/SatCity/contracts/verifier"
	"github.com/Sprimage/SatCity/contracts/verifier/proof"
	"github.com/Sprimage/SatCity/observability/logging"
)

var configPath = flag.String("config", "./satcity-devnet.toml", "path to the devnet harness config file")

func main() {
	flag.Parse()
	args := flag.Args()

	logger, runID := logging.Setup("satcity-devnet", "local")

	if len(args) < 1 {
		printUsage()
		return
	}

	logger.Info("devnet run starting", slog.String("command", args[0]))
	fmt.Fprintf(os.Stderr, "run %s\n", runID)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := storage.OpenLevelDB(cfg.DataDir)
	if err != nil {
		logger.Error("open state dir", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	dao := alkane.NewId(cfg.DAOBlock, cfg.DAOTx)
	owner := alkane.NewId(cfg.OwnerBlock, cfg.OwnerTx)

	switch args[0] {
	case "init":
		cmdInit(logger, db, cfg, dao, owner, args[1:])
	case "deposit":
		cmdDeposit(logger, db, args[1:])
	case "withdraw":
		cmdWithdraw(logger, db, cfg, args[1:])
	case "allow-token":
		cmdAllowToken(logger, db, dao, args[1:])
	case "disallow-token":
		cmdDisallowToken(logger, db, dao, args[1:])
	case "set-paused":
		cmdSetPaused(logger, db, dao, args[1:])
	case "verify-update":
		cmdVerifyUpdate(logger, db, owner, args[1:])
	case "state-root":
		cmdStateRoot(logger, db, owner)
	default:
		fmt.Printf("Unknown command: %s\n", args[0])
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage: satcity-devnet [--config path] <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init                                         - bootstrap both contracts against the configured data dir")
	fmt.Println("  deposit <caller> <token> <value>             - deposit value units of token from caller")
	fmt.Println("  withdraw <recipient> <token> <amount> <nonce> <sigHex> - authorize and execute a withdrawal")
	fmt.Println("  allow-token <token>                          - DAO: allow deposits of token")
	fmt.Println("  disallow-token <token>                       - DAO: stop accepting deposits of token")
	fmt.Println("  set-paused <true|false>                      - DAO: toggle the pause gate")
	fmt.Println("  verify-update <witnessHexFile>                - owner: submit a SATC witness and advance the state root")
	fmt.Println("  state-root                                    - read the committed state root")
	fmt.Println()
	fmt.Println("AlkaneIds are passed as \"block:tx\", e.g. 2:100.")
}

func cmdInit(logger *slog.Logger, db storage.Database, cfg *config.Config, dao, owner alkane.Id, args []string) {
	operatorKey, err := cfg.LoadOperatorKey()
	if err != nil {
		logger.Error("load operator key", slog.Any("error", err))
		os.Exit(1)
	}

	e := escrow.New(db, nil)
	if _, err := e.Initialize(dao, dao, operatorKey.PublicKeyBytes()); err != nil {
		logger.Error("initialize escrow", slog.Any("error", err))
		os.Exit(1)
	}

	v, err := verifier.New(db, owner, proof.CommitmentVerifier{}, nil)
	if err != nil {
		logger.Error("construct verifier", slog.Any("error", err))
		os.Exit(1)
	}
	bridge := dao
	if err := v.Initialize(owner, bridge); err != nil {
		logger.Error("initialize verifier", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("devnet bootstrapped",
		slog.String("dao", dao.String()),
		slog.String("owner", owner.String()),
		slog.String("operatorPubKey", fmt.Sprintf("%x", operatorKey.PublicKeyBytes())),
	)
}


func cmdDeposit(logger *slog.Logger, db storage.Database, args []string) {
	if len(args) < 3 {
		fmt.Println("Usage: deposit <caller> <token> <value>")
		return
	}
	caller, err := parseID(args[0])
	if err != nil {
		logger.Error("parse caller", slog.Any("error", err))
		os.Exit(1)
	}
	token, err := parseID(args[1])
	if err != nil {
		logger.Error("parse token", slog.Any("error", err))
		os.Exit(1)
	}
	value, ok := new(big.Int).SetString(args[2], 10)
	if !ok {
		logger.Error("parse value", slog.String("value", args[2]))
		os.Exit(1)
	}

	e := escrow.New(db, nil)
	_, err = e.Deposit(caller, alkane.Parcel{alkane.Transfer{Id: token, Value: value}})
	if err != nil {
		logger.Error("deposit", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("deposit accepted", slog.String("caller", caller.String()), slog.String("token", token.String()), slog.String("value", value.String()))
}

func cmdWithdraw(logger *slog.Logger, db storage.Database, cfg *config.Config, args []string) {
	if len(args) < 5 {
		fmt.Println("Usage: withdraw <recipient> <token> <amount> <nonce> <sigHex>")
		return
	}
	recipient, err := parseID(args[0])
	if err != nil {
		logger.Error("parse recipient", slog.Any("error", err))
		os.Exit(1)
	}
	token, err := parseID(args[1])
	if err != nil {
		logger.Error("parse token", slog.Any("error", err))
		os.Exit(1)
	}
	amount, ok := new(big.Int).SetString(args[2], 10)
	if !ok {
		logger.Error("parse amount", slog.String("amount", args[2]))
		os.Exit(1)
	}
	nonce, ok := new(big.Int).SetString(args[3], 10)
	if !ok {
		logger.Error("parse nonce", slog.String("nonce", args[3]))
		os.Exit(1)
	}
	sig, err := hex.DecodeString(strings.TrimPrefix(args[4], "0x"))
	if err != nil {
		logger.Error("parse signature", slog.Any("error", err))
		os.Exit(1)
	}

	myself := alkane.NewId(cfg.OwnerBlock, cfg.OwnerTx)
	e := escrow.New(db, nil)
	outgoing, err := e.Withdraw(myself, recipient, token, amount, nonce, sig)
	if err != nil {
		logger.Error("withdraw", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("withdraw executed", slog.Any("outgoing", outgoing))
}

func cmdAllowToken(logger *slog.Logger, db storage.Database, dao alkane.Id, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: allow-token <token>")
		return
	}
	token, err := parseID(args[0])
	if err != nil {
		logger.Error("parse token", slog.Any("error", err))
		os.Exit(1)
	}
	e := escrow.New(db, nil)
	if err := e.AddTokenToAllowlist(dao, token); err != nil {
		logger.Error("allow token", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("token allowlisted", slog.String("token", token.String()))
}

func cmdDisallowToken(logger *slog.Logger, db storage.Database, dao alkane.Id, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: disallow-token <token>")
		return
	}
	token, err := parseID(args[0])
	if err != nil {
		logger.Error("parse token", slog.Any("error", err))
		os.Exit(1)
	}
	e := escrow.New(db, nil)
	if err := e.RemoveTokenFromAllowlist(dao, token); err != nil {
		logger.Error("disallow token", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("token disallowed", slog.String("token", token.String()))
}

func cmdSetPaused(logger *slog.Logger, db storage.Database, dao alkane.Id, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: set-paused <true|false>")
		return
	}
	paused, err := strconv.ParseBool(args[0])
	if err != nil {
		logger.Error("parse paused", slog.Any("error", err))
		os.Exit(1)
	}
	e := escrow.New(db, nil)
	if err := e.SetPaused(dao, paused); err != nil {
		logger.Error("set paused", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("pause flag set", slog.Bool("paused", paused))
}

func cmdVerifyUpdate(logger *slog.Logger, db storage.Database, owner alkane.Id, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: verify-update <witnessHexFile>")
		return
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		logger.Error("read witness file", slog.Any("error", err))
		os.Exit(1)
	}
	witness, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(string(raw)), "0x"))
	if err != nil {
		logger.Error("decode witness hex", slog.Any("error", err))
		os.Exit(1)
	}

	v, err := verifier.New(db, owner, proof.CommitmentVerifier{}, nil)
	if err != nil {
		logger.Error("construct verifier", slog.Any("error", err))
		os.Exit(1)
	}
	if err := v.VerifyAndUpdate(owner, witness); err != nil {
		logger.Error("verify and update", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("state root advanced")
}

func cmdStateRoot(logger *slog.Logger, db storage.Database, owner alkane.Id) {
	v, err := verifier.New(db, owner, proof.CommitmentVerifier{}, nil)
	if err != nil {
		logger.Error("construct verifier", slog.Any("error", err))
		os.Exit(1)
	}
	root, err := v.GetStateRoot()
	if err != nil {
		logger.Error("get state root", slog.Any("error", err))
		os.Exit(1)
	}
	fmt.Printf("%x\n", root)
}

func parseID(s string) (alkane.Id, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return alkane.Id{}, fmt.Errorf("invalid AlkaneId %q, expected \"block:tx\"", s)
	}
	block, ok := new(big.Int).SetString(parts[0], 10)
	if !ok {
		return alkane.Id{}, fmt.Errorf("invalid block component %q", parts[0])
	}
	tx, ok := new(big.Int).SetString(parts[1], 10)
	if !ok {
		return alkane.Id{}, fmt.Errorf("invalid tx component %q", parts[1])
	}
	id := alkane.Id{Block: block, Tx: tx}
	if !id.Valid() {
		return alkane.Id{}, fmt.Errorf("AlkaneId %q out of u128 range", s)
	}
	return id, nil
}

