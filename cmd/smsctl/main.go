package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taoyao-code/tencentcloud-sms/credential"
	"github.com/taoyao-code/tencentcloud-sms/internal/config"
	"github.com/taoyao-code/tencentcloud-sms/internal/logging"
	"github.com/taoyao-code/tencentcloud-sms/sms"
	"github.com/taoyao-code/tencentcloud-sms/tcerr"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "配置文件路径（默认 ./configs/smsctl.yaml）")
		phones  = flag.String("phone", "", "目标手机号，逗号分隔，E.164 格式")
		params  = flag.String("params", "", "模板参数，逗号分隔")
		intl    = flag.Bool("international", false, "国际短信（不带签名）")
	)
	flag.Parse()

	// 1) 加载配置
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid config:", err)
		os.Exit(1)
	}

	// 2) 初始化日志
	logger, err := logging.InitLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)
	log := zap.L()

	if *phones == "" {
		log.Fatal("no phone numbers, use -phone +86...,+86...")
	}
	phoneList := splitComma(*phones)

	// 3) 凭证来自环境变量，不进配置文件
	cred, err := credential.FromEnv()
	if err != nil {
		log.Fatal("load credential", zap.Error(err))
	}

	// 4) 客户端
	cli := sms.NewClientWithProfile(cred, cfg.Sms.Region, &cfg.Client)
	cli.SetLogger(logger)

	var req *sms.SendSmsRequest
	if *intl {
		req = sms.NewInternationalSendSmsRequest(phoneList, cfg.Sms.SdkAppID, cfg.Sms.TemplateID, splitComma(*params))
	} else {
		req = sms.NewSendSmsRequest(phoneList, cfg.Sms.SdkAppID, cfg.Sms.TemplateID, cfg.Sms.SignName, splitComma(*params))
	}
	// 会话上下文随响应原样返回，用随机 ID 方便对账
	req.SessionContext = uuid.NewString()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	resp, err := cli.SendSms(ctx, req)
	if err != nil {
		if e := tcerr.AsError(err); e != nil && e.Kind() == tcerr.KindAPI {
			log.Fatal("api error",
				zap.String("code", e.Code()),
				zap.String("message", e.Message()),
				zap.String("request_id", e.RequestID()))
		}
		log.Fatal("send sms", zap.Error(err))
	}

	for i := range resp.SendStatusSet {
		st := &resp.SendStatusSet[i]
		if st.IsSuccess() {
			log.Info("sent",
				zap.String("phone", st.PhoneNumber),
				zap.String("serial_no", st.SerialNo),
				zap.Int("fee", st.Fee))
		} else {
			log.Warn("failed",
				zap.String("phone", st.PhoneNumber),
				zap.String("code", st.Code),
				zap.String("message", st.Message))
		}
	}
	log.Info("done",
		zap.String("request_id", resp.RequestID),
		zap.Int("success", resp.SuccessCount()),
		zap.Int("failed", resp.FailedCount()))

	if !resp.IsAllSuccess() {
		os.Exit(2)
	}
}

func splitComma(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
