package main

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"subgraph_setup_utils/pkg/devnode"
)

const etherDecimals = 18

func (a *app) blockNumberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "block-number",
		Short: "Print the current block height",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			n, err := a.node.BlockNumber(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func (a *app) mineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "Mine one block and print the new height",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if err := a.node.MineBlock(ctx); err != nil {
				return err
			}
			n, err := a.node.BlockNumber(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func (a *app) warpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warp <seconds>",
		Short: "Advance the node clock and mine a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seconds %q: %w", args[0], err)
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			if err := a.node.IncreaseTime(ctx, seconds); err != nil {
				return err
			}
			n, err := a.node.BlockNumber(ctx)
			if err != nil {
				return err
			}
			block, err := a.node.BlockByNumber(ctx, n, false)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "block %d timestamp %d\n", block.Number, block.Timestamp)
			return nil
		},
	}
}

func (a *app) blockCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "block <number|hash>",
		Short: "Print a block by number or hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			var (
				block *devnode.Block
				err   error
			)
			if isHash(args[0]) {
				block, err = a.node.BlockByHash(ctx, common.HexToHash(args[0]))
			} else {
				var n uint64
				n, err = strconv.ParseUint(args[0], 0, 64)
				if err != nil {
					return fmt.Errorf("invalid block number %q: %w", args[0], err)
				}
				block, err = a.node.BlockByNumber(ctx, n, full)
			}
			if err != nil {
				return err
			}
			printBlock(cmd.OutOrStdout(), block)
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "Include full transaction bodies")
	return cmd
}

func (a *app) txBlockCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "tx-block <hash>",
		Short: "Print the block that includes a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isHash(args[0]) {
				return fmt.Errorf("invalid transaction hash %q", args[0])
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			block, err := a.node.BlockByTransaction(ctx, common.HexToHash(args[0]), full)
			if err != nil {
				return err
			}
			printBlock(cmd.OutOrStdout(), block)
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "Include full transaction bodies")
	return cmd
}

func (a *app) chainIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chain-id",
		Short: "Print the node chain id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			id, err := a.node.ChainID(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id.String())
			return nil
		},
	}
}

func (a *app) addressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address [index]",
		Short: "Print the address derived at an index of the configured mnemonic (default: wallet.default_index)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				kp, err := a.wallets.DefaultWallet()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), kp.Address().Hex())
				return nil
			}

			index, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			kp, err := a.wallets.GetWallet(uint32(index))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), kp.Address().Hex())
			return nil
		},
	}
}

func (a *app) snapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Snapshot the chain state and print the snapshot id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			id, err := a.node.Snapshot(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func (a *app) revertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revert <id>",
		Short: "Revert the chain to a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			ok, err := a.node.Revert(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("snapshot %s was not reverted", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "reverted")
			return nil
		},
	}
}

func isHash(s string) bool {
	return strings.HasPrefix(s, "0x") && len(s) == 2+2*common.HashLength
}

func printBlock(w io.Writer, b *devnode.Block) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendSeparator()
	t.AppendRow(table.Row{"number", b.Number})
	t.AppendRow(table.Row{"hash", b.Hash.Hex()})
	t.AppendRow(table.Row{"parent", b.ParentHash.Hex()})
	t.AppendRow(table.Row{"timestamp", b.Timestamp})
	t.AppendRow(table.Row{"gas used", fmt.Sprintf("%d/%d", b.GasUsed, b.GasLimit)})
	if b.BaseFee != nil {
		t.AppendRow(table.Row{"base fee", b.BaseFee.String()})
	}
	t.Render()

	if b.HasFullTransactions() {
		if len(b.Transactions) == 0 {
			return
		}
		txs := table.NewWriter()
		txs.SetOutputMirror(w)
		txs.AppendHeader(table.Row{"Hash", "From", "To", "Value (ETH)"})
		for _, tx := range b.Transactions {
			to := "<create>"
			if tx.To != nil {
				to = tx.To.Hex()
			}
			txs.AppendRow(table.Row{tx.Hash.Hex(), tx.From.Hex(), to, fmtEther(tx.Value)})
		}
		txs.Render()
		return
	}
	for _, h := range b.TransactionHashes {
		fmt.Fprintln(w, h.Hex())
	}
}

func fmtEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -etherDecimals).String()
}
