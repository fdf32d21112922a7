package solana

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	log "github.com/sirupsen/logrus"
)

const LamportsPerSol = 1_000_000_000

var (
	rpcClient *rpc.Client
	once      sync.Once
)

// RPCClient returns the shared Solana RPC client (initialized once).
func RPCClient() *rpc.Client {
	once.Do(func() {
		endpoint := os.Getenv("SOLANA_RPC_URL")
		if endpoint == "" {
			endpoint = rpc.DevNet_RPC
		}
		rpcClient = rpc.New(endpoint)
	})
	return rpcClient
}

// WithdrawalConfig carries the settlement parameters for user withdrawals.
type WithdrawalConfig struct {
	FeePercentage      float64
	MinWithdrawal      float64
	AdminWalletAddress string
}

// WithdrawalConfigFromEnv reads the settlement parameters, with the same
// defaults the frontend displays (10% fee, 0.1 SOL minimum).
func WithdrawalConfigFromEnv() WithdrawalConfig {
	cfg := WithdrawalConfig{
		FeePercentage:      10,
		MinWithdrawal:      0.1,
		AdminWalletAddress: os.Getenv("ADMIN_WALLET_ADDRESS"),
	}
	if v, err := strconv.ParseFloat(os.Getenv("FEE_PERCENTAGE"), 64); err == nil {
		cfg.FeePercentage = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("MIN_WITHDRAWAL_AMOUNT"), 64); err == nil {
		cfg.MinWithdrawal = v
	}
	return cfg
}

// GetSolBalance returns the SOL balance of an address. Lookup failures are
// reported as a zero balance, matching the rest of the wallet surface.
func GetSolBalance(client *rpc.Client, address string) (float64, error) {
	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return 0, fmt.Errorf("invalid address: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := client.GetBalance(ctx, owner, rpc.CommitmentConfirmed)
	if err != nil {
		log.Errorf("Failed to get balance for %s: %v", address, err)
		return 0, err
	}
	return float64(resp.Value) / LamportsPerSol, nil
}

// IsValidAddress reports whether a string parses as a Solana public key.
func IsValidAddress(address string) bool {
	_, err := solana.PublicKeyFromBase58(address)
	return err == nil
}

// TransferResult is the outcome of an on-chain transfer.
type TransferResult struct {
	Signature string
	Success   bool
	FeeAmount float64
	Err       error
}

// TransferSOL sends SOL from the key's wallet to the target address.
func TransferSOL(client *rpc.Client, fromKey solana.PrivateKey, toAddress string, amount float64) TransferResult {
	toPubkey, err := solana.PublicKeyFromBase58(toAddress)
	if err != nil {
		return TransferResult{Err: fmt.Errorf("invalid target address: %w", err)}
	}

	instructions := []solana.Instruction{
		system.NewTransferInstruction(
			uint64(amount*LamportsPerSol),
			fromKey.PublicKey(),
			toPubkey,
		).Build(),
	}

	sig, err := signAndSend(client, fromKey, instructions)
	if err != nil {
		return TransferResult{Err: err}
	}
	return TransferResult{Signature: sig, Success: true}
}

// WithdrawWithFee sends a withdrawal split into the user payout and the
// admin fee, both in one transaction. The fee share is skipped when no
// admin wallet is configured.
func WithdrawWithFee(client *rpc.Client, fromKey solana.PrivateKey, fromAddress, toAddress string, amount float64, cfg WithdrawalConfig) TransferResult {
	balance, err := GetSolBalance(client, fromAddress)
	if err != nil || balance < amount {
		return TransferResult{Err: fmt.Errorf("insufficient balance")}
	}

	if amount < cfg.MinWithdrawal {
		return TransferResult{Err: fmt.Errorf("minimum withdrawal is %v SOL", cfg.MinWithdrawal)}
	}

	feeAmount := amount * cfg.FeePercentage / 100

	// No admin wallet configured means nothing to split.
	if cfg.AdminWalletAddress == "" || feeAmount <= 0 {
		return TransferSOL(client, fromKey, toAddress, amount)
	}

	toPubkey, err := solana.PublicKeyFromBase58(toAddress)
	if err != nil {
		return TransferResult{Err: fmt.Errorf("invalid target address: %w", err)}
	}

	userReceives := amount - feeAmount

	instructions := []solana.Instruction{
		system.NewTransferInstruction(
			uint64(userReceives*LamportsPerSol),
			fromKey.PublicKey(),
			toPubkey,
		).Build(),
	}

	adminPubkey, err := solana.PublicKeyFromBase58(cfg.AdminWalletAddress)
	if err != nil {
		return TransferResult{Err: fmt.Errorf("invalid admin wallet address: %w", err)}
	}
	instructions = append(instructions, system.NewTransferInstruction(
		uint64(feeAmount*LamportsPerSol),
		fromKey.PublicKey(),
		adminPubkey,
	).Build())

	sig, err := signAndSend(client, fromKey, instructions)
	if err != nil {
		return TransferResult{Err: err}
	}
	return TransferResult{Signature: sig, Success: true, FeeAmount: feeAmount}
}

func signAndSend(client *rpc.Client, fromKey solana.PrivateKey, instructions []solana.Instruction) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	recent, err := client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return "", fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		instructions,
		recent.Value.Blockhash,
		solana.TransactionPayer(fromKey.PublicKey()),
	)
	if err != nil {
		return "", fmt.Errorf("failed to build transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(fromKey.PublicKey()) {
			return &fromKey
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	sig, err := client.SendTransaction(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	return sig.String(), nil
}

// CheckTransactionStatus maps an on-chain signature status onto the ledger
// status vocabulary.
func CheckTransactionStatus(client *rpc.Client, signature string) (string, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return "", fmt.Errorf("invalid signature format: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := client.GetSignatureStatuses(ctx, false, sig)
	if err != nil {
		return "", fmt.Errorf("failed to get signature status: %w", err)
	}

	if len(res.Value) == 0 || res.Value[0] == nil {
		return "pending", nil
	}

	status := res.Value[0]
	if status.Err != nil {
		return "failed", nil
	}

	switch status.ConfirmationStatus {
	case rpc.ConfirmationStatusFinalized, rpc.ConfirmationStatusConfirmed:
		return "confirmed", nil
	default:
		return "pending", nil
	}
}
