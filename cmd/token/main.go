// token 以 JWT_SECRET 簽發管理用的 HS256 access token
//
//	JWT_SECRET=... token -sub 1 -admin -ttl 1h
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"iot-web/internal/service"
)

var (
	stdout   io.Writer = os.Stdout
	exitFunc           = os.Exit
)

func run(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	sub := fs.Int("sub", 0, "使用者 ID")
	admin := fs.Bool("admin", false, "是否為管理員")
	ttl := fs.Duration("ttl", time.Hour, "有效期限")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sub <= 0 {
		return fmt.Errorf("-sub 必須為正整數")
	}

	tok, err := service.IssueAccessToken(os.Getenv("JWT_SECRET"), *sub, *admin, *ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, tok)
	return err
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
