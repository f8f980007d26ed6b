// adhoc-cli 无界面批处理入口：扫描与完整对账
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/codec"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/config"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/exporter"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/model"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/parser"
	"github.com/marcomessina1979/creazione-database-adhoc-da-a3/internal/session"
)

var (
	orderPath   string
	dbPath      string
	commessa    string
	outPath     string
	corrections []string
	skipUnres   bool
)

var rootCmd = &cobra.Command{
	Use:   "adhoc-cli",
	Short: "A3 订单与物料数据库对账的命令行工具",
	Long: `adhoc-cli 读取 A3 订单表与物料数据库表，构造物料编码并对账，
生成 Database_AdHoc 输出表。适合脚本化批处理；交互式使用请运行 adhoc。`,
	SilenceUsage: true,
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "只做第一阶段扫描，列出无法构造编码的行",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		unresolved, err := sess.Scan()
		if err != nil {
			return err
		}
		return printJSON(map[string]any{
			"unresolved": unresolved,
		})
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "完整对账并写出 Database_AdHoc 文件",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		unresolved, err := sess.Scan()
		if err != nil {
			return err
		}

		corr, err := parseCorrections(corrections)
		if err != nil {
			return err
		}

		// 有待修正行且既没给修正也没允许跳过：挂起，让调用方补充参数
		if len(unresolved) > 0 && corr.Len() == 0 && !skipUnres {
			_ = printJSON(map[string]any{"unresolved": unresolved})
			return fmt.Errorf("%d righe senza codice: ripeti con --correction riga=CODICE oppure --skip-unresolved", len(unresolved))
		}

		res, err := sess.Resume(corr)
		if err != nil {
			return err
		}

		data, err := codec.Write(res.Workbook)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return fmt.Errorf("写输出文件失败: %w", err)
		}

		res.Summary.OutputFile = outPath
		return printJSON(res.Summary)
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	rootCmd.PersistentFlags().StringVar(&orderPath, "order", "", "A3 订单文件路径 (.xlsx)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "物料数据库文件路径")
	_ = rootCmd.MarkPersistentFlagRequired("order")
	_ = rootCmd.MarkPersistentFlagRequired("db")

	processCmd.Flags().StringVar(&commessa, "commessa", cfg.Job.DefaultCommessa, "工单号（写入输出表 Commessa 列）")
	processCmd.Flags().StringVar(&outPath, "out", cfg.Output.FileName, "输出文件路径")
	processCmd.Flags().StringArrayVar(&corrections, "correction", nil, "人工修正，格式 行号=编码，可重复")
	processCmd.Flags().BoolVar(&skipUnres, "skip-unresolved", false, "放弃所有无法构造编码的行")

	rootCmd.AddCommand(scanCmd, processCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newSession 读两个输入文件并建会话
func newSession() (*session.Session, error) {
	orderData, err := os.ReadFile(orderPath)
	if err != nil {
		return nil, fmt.Errorf("读订单文件失败: %w", err)
	}
	dbData, err := os.ReadFile(dbPath)
	if err != nil {
		return nil, fmt.Errorf("读数据库文件失败: %w", err)
	}

	orderSheet, err := codec.Open(orderData)
	if err != nil {
		return nil, fmt.Errorf("解析订单文件失败: %w", err)
	}
	dbSheet, err := codec.Open(dbData)
	if err != nil {
		return nil, fmt.Errorf("解析数据库文件失败: %w", err)
	}

	out := outPath
	if out == "" {
		out = exporter.DefaultFileName
	}
	return session.New(orderSheet, dbSheet, commessa, out), nil
}

// parseCorrections 解析 --correction 行号=编码 参数
func parseCorrections(args []string) (model.CorrectionSet, error) {
	raw := make(map[int]string, len(args))
	for _, a := range args {
		k, v, found := strings.Cut(a, "=")
		if !found {
			return model.EmptyCorrectionSet(), fmt.Errorf("无效的修正参数 %q，期望 行号=编码", a)
		}
		row, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return model.EmptyCorrectionSet(), fmt.Errorf("无效的行号 %q", k)
		}
		raw[row] = v
	}
	return model.NewCorrectionSet(raw, parser.NormalizeCode), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
