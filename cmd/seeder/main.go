package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/candorlabs/qanswer/core"
	"github.com/candorlabs/qanswer/ingestion"
	"github.com/candorlabs/qanswer/storage/badger"
)

type seedRow struct {
	section  string
	question string
	answer   string
}

var seedRows = []seedRow{
	{"Hosting", "Where is the platform hosted?", "The platform is hosted on AWS in the me-central-1 (UAE) region."},
	{"Hosting", "Can the solution be deployed on premises?", "The solution is delivered as SaaS only; on-premise deployment is not offered."},
	{"Hosting", "Which cloud provider hosts the production environment?", "Production runs entirely on AWS, with infrastructure managed through Terraform."},
	{"Hosting", "Is the platform available in multiple regions?", "The primary region is me-central-1 with disaster recovery in eu-west-1."},
	{"Security", "Is data encrypted at rest?", "Yes, all customer data is encrypted at rest using AES-256."},
	{"Security", "Is data encrypted in transit?", "All traffic uses TLS 1.2 or higher; internal service traffic is mutually authenticated."},
	{"Security", "Do you support single sign-on?", "SSO is supported via SAML 2.0 and OIDC, with SCIM provisioning available."},
	{"Security", "Is multi-factor authentication enforced?", "MFA is enforced for all administrative access and available for all user accounts."},
	{"Security", "How is access to production controlled?", "Production access follows least privilege with RBAC, time-boxed elevation and full audit logging."},
	{"Security", "Do you perform penetration testing?", "An independent VAPT is performed annually, with findings remediated on a risk-based schedule."},
	{"Compliance", "What certifications does the platform hold?", "The platform is ISO 27001 certified and completes SOC 2 Type II audits annually."},
	{"Compliance", "How is personal data handled?", "PII is processed according to GDPR principles, with data residency kept in-region."},
	{"Compliance", "Do you have AML and KYC controls?", "KYC verification and AML transaction screening are built into onboarding and payments flows."},
	{"Integration", "Do you provide a mobile SDK?", "We do not recommend SDK usage; the platform is API-first and all functionality is exposed over REST APIs."},
	{"Integration", "How do partners integrate with the platform?", "Partners integrate through versioned REST APIs with OAuth 2.0 client credentials."},
	{"Integration", "Do you support webhooks?", "Webhooks with signed payloads are available for all major lifecycle events."},
	{"Operations", "What is your recovery time objective?", "RTO is four hours and RPO is fifteen minutes for all critical services."},
	{"Operations", "Do you have a business continuity plan?", "A BCP and DR plan are maintained and exercised twice a year."},
	{"Operations", "How are incidents communicated?", "Incidents are communicated through a status page and direct notification within one hour of classification."},
	{"Team", "Where is the engineering team located?", "Engineering is based in Abu Dhabi and Dubai, with follow-the-sun support coverage."},
}

var (
	dbPath  = flag.String("db", "./kb_db", "path to BadgerDB knowledge-base directory")
	srcPath = flag.String("src", "", "CSV file of seed data (uses the built-in sample if empty)")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func seedBuiltin(ctx context.Context, repo *badger.EntryRepository) (int, error) {
	entries := make([]*core.KnowledgeEntry, len(seedRows))
	for i, row := range seedRows {
		entries[i] = &core.KnowledgeEntry{
			DocumentName: "sample_kb",
			Section:      row.section,
			RowNumber:    i + 2,
			Question:     row.question,
			Answer:       row.answer,
		}
	}

	added, err := repo.AddEntries(ctx, entries...)
	if err != nil {
		return 0, err
	}
	return len(added), nil
}

func main() {
	backend, err := badger.OpenBackend(*dbPath, false)
	if err != nil {
		panic(err)
	}
	defer backend.Close()

	repo, err := badger.NewEntryRepository(backend)
	if err != nil {
		panic(err)
	}
	defer repo.Close()

	ctx := context.Background()

	if *srcPath != "" {
		loader, err := ingestion.NewLoader(repo)
		if err != nil {
			panic(err)
		}
		result, err := loader.LoadFile(ctx, *srcPath)
		if err != nil {
			panic(err)
		}
		slog.Info("seeded from file", "document", result.DocumentName, "added", result.Added)
		return
	}

	added, err := seedBuiltin(ctx, repo)
	if err != nil {
		panic(err)
	}
	slog.Info("seeded built-in sample", "added", added)
}
