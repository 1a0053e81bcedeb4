// Package bridge matches a reporting company with investors whose mandates
// fit its sector, region, funding need and ESG profile.
//
// The investor directory is a YAML file. Each investor is scored out of 100:
// sector 30, region 20, ticket size 25, ESG focus overlap 15 and disclosure
// readiness 10. Investors whose minimum readiness exceeds the company's
// dashboard completeness are never returned.
package bridge
