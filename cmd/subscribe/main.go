// Command subscribe runs the newsletter signup flow in the terminal. It
// keeps its state on disk, so an interrupted session resumes where it
// left off.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"anxonews-server/internal/clients/subscribeapi"
	"anxonews-server/internal/flow"
	"anxonews-server/internal/localstore"
	"anxonews-server/internal/observability"

	"github.com/joho/godotenv"
)

func main() {
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: env.local not loaded: %v", err)
		}
	}

	logger := observability.NewNopLogger()
	ctx := context.Background()

	apiURL := os.Getenv("SUBSCRIBE_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	stateDir := os.Getenv("STATE_DIR")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("failed to resolve home directory: %v", err)
		}
		stateDir = filepath.Join(home, ".anxonews")
	}

	store, err := localstore.NewFileStore(stateDir)
	if err != nil {
		log.Fatalf("failed to open state directory: %v", err)
	}

	submitter := subscribeapi.NewClient(apiURL, os.Getenv("SUBSCRIBE_API_KEY"), logger)

	f := flow.New(store, store, store, submitter, logger)
	if region := os.Getenv("PHONE_REGION"); region != "" {
		f = f.WithPhoneRegion(region)
	}
	defer f.Close()

	in := bufio.NewScanner(os.Stdin)
	for {
		switch f.Step() {
		case localstore.StepEmail:
			stepEmail(f, in)
		case localstore.StepDetails:
			stepDetails(ctx, f, in)
		case localstore.StepAlreadySubscribed:
			stepAlreadySubscribed(f, in)
		case localstore.StepSuccess:
			stepSuccess(f, in)
		case localstore.StepSetup:
			stepSetup(f, in)
		case localstore.StepCompleted:
			fmt.Println("¡Todo listo! Gracias por suscribirte.")
			return
		default:
			return
		}
	}
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(in.Text())
}

func showError(f *flow.Flow) {
	if msg := f.Err(); msg != "" {
		fmt.Println("  ⚠ " + msg)
	}
}

func stepEmail(f *flow.Flow, in *bufio.Scanner) {
	fmt.Println("Suscríbete a la newsletter")
	showError(f)
	f.SetEmail(prompt(in, "Email: "))
	f.ContinueEmail()
}

func stepDetails(ctx context.Context, f *flow.Flow, in *bufio.Scanner) {
	fmt.Printf("Completa tus datos (%s)\n", f.Email())
	showError(f)
	f.SetName(prompt(in, "Nombre: "))
	f.SetPhone(prompt(in, "Teléfono: "))
	answer := prompt(in, "¿Aceptas la Política de Privacidad? (s/n): ")
	f.SetAcceptedPrivacy(strings.EqualFold(answer, "s"))
	f.SubmitDetails(ctx)
}

func stepAlreadySubscribed(f *flow.Flow, in *bufio.Scanner) {
	fmt.Println("Este email ya está suscrito.")
	prompt(in, "Pulsa Enter para volver al inicio…")
	f.AcknowledgeAlreadySubscribed()
}

func stepSuccess(f *flow.Flow, in *bufio.Scanner) {
	f.StartCountdown()
	name := f.SavedName()
	if name != "" {
		fmt.Printf("¡Gracias, %s! Revisa tu bandeja de entrada.\n", name)
	} else {
		fmt.Println("¡Gracias! Revisa tu bandeja de entrada.")
	}
	fmt.Printf("Confirma tu email en los próximos %s minutos.\n", flow.FormatCountdown(f.Countdown()))
	prompt(in, "Pulsa Enter para configurar tu correo…")
	f.ContinueToSetup()
}

func stepSetup(f *flow.Flow, in *bufio.Scanner) {
	checks := f.SetupChecks()
	fmt.Println("Configura tu correo para no perderte nada:")
	fmt.Printf("  [%s] 1. Crea un filtro para la newsletter\n", mark(checks.Filter))
	fmt.Printf("  [%s] 2. Muévela a tu bandeja principal\n", mark(checks.Primary))
	fmt.Printf("  Tiempo restante: %s\n", flow.FormatCountdown(f.Countdown()))
	showError(f)

	switch prompt(in, "Marca un paso (1/2) o escribe 'listo': ") {
	case "1":
		f.SetSetupCheck(flow.CheckFilter, !checks.Filter)
	case "2":
		f.SetSetupCheck(flow.CheckPrimary, !checks.Primary)
	case "listo":
		f.FinishSetup()
	}
}

func mark(done bool) string {
	if done {
		return "x"
	}
	return " "
}
