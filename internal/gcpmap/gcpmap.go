// Package gcpmap translates service categories, instance types, regions and
// database engines into their GCP equivalents. It is a pure lookup table:
// unmapped inputs return ok=false, never a guess.
package gcpmap

import "strings"

// ServiceMapping is the GCP equivalent of one service category.
type ServiceMapping struct {
	Category    string
	Service     string
	ServiceType string
}

var serviceTable = map[string]ServiceMapping{
	"EC2":          {"Compute", "Compute Engine", "Virtual Machines"},
	"RDS":          {"Databases", "Cloud SQL", "Relational Database Service"},
	"S3":           {"Storage", "Cloud Storage", "Object Storage"},
	"EBS":          {"Compute", "Persistent Disk", "Block Storage"},
	"EFS":          {"Storage", "Filestore", "Managed NFS"},
	"CloudWatch":   {"Operations", "Cloud Operations Suite", "Monitoring and Logging"},
	"DataTransfer": {"Networking", "Cloud CDN", "Content Delivery Network"},
	"VPC":          {"Networking", "Virtual Private Cloud", "Private Network"},
	"Backup":       {"Storage", "Cloud Storage", "Backup and Archive"},
	"Marketplace":  {"AI and Machine Learning", "Vertex AI", "AI Platform"},
	"Lambda":       {"Serverless", "Cloud Functions", "Event-driven Compute"},
	"CloudFront":   {"Networking", "Cloud CDN", "Content Delivery Network"},
	"ElastiCache":  {"Databases", "Memorystore", "In-memory Cache"},
	"SQS":          {"Integration", "Cloud Tasks", "Message Queue"},
	"SNS":          {"Integration", "Pub/Sub", "Messaging"},
	"DynamoDB":     {"Databases", "Firestore", "NoSQL Database"},
	"EKS":          {"Compute", "Google Kubernetes Engine", "Managed Kubernetes"},
	"ECS":          {"Compute", "Cloud Run", "Containers"},
}

// Service returns the GCP mapping for a service category.
func Service(category string) (ServiceMapping, bool) {
	m, ok := serviceTable[category]
	return m, ok
}

var instanceTable = map[string]string{
	// general purpose, burstable
	"t2.micro": "e2-micro", "t2.small": "e2-small", "t2.medium": "e2-medium",
	"t3.micro": "e2-micro", "t3.small": "e2-small", "t3.medium": "e2-medium",
	"t3.large": "e2-standard-2", "t3.xlarge": "e2-standard-4",
	"t3a.micro": "e2-micro", "t3a.small": "e2-small", "t3a.medium": "e2-medium",
	"t3a.large": "e2-standard-2", "t3a.xlarge": "e2-standard-4",
	// compute optimized
	"c5.large": "c2-standard-4", "c5.xlarge": "c2-standard-8",
	"c5.2xlarge": "c2-standard-16", "c5.4xlarge": "c2-standard-30",
	// memory optimized
	"r5.large": "n2-highmem-2", "r5.xlarge": "n2-highmem-4",
	"r5.2xlarge": "n2-highmem-8", "r5.4xlarge": "n2-highmem-16",
	"r6g.large": "n2-highmem-2", "r6g.xlarge": "n2-highmem-4",
	"r6g.2xlarge": "n2-highmem-8", "r6g.4xlarge": "n2-highmem-16",
	// storage optimized
	"i3.large": "n2-standard-2", "i3.xlarge": "n2-standard-4", "i3.2xlarge": "n2-standard-8",
	// general purpose
	"m5.large": "n2-standard-2", "m5.xlarge": "n2-standard-4",
	"m5.2xlarge": "n2-standard-8", "m5.4xlarge": "n2-standard-16",
}

// InstanceType returns the GCP machine type for an AWS instance type.
func InstanceType(instance string) (string, bool) {
	m, ok := instanceTable[strings.ToLower(instance)]
	return m, ok
}

var regionTable = map[string]string{
	"us east (n. virginia)":    "us-east1",
	"us east (ohio)":           "us-east4",
	"us west (oregon)":         "us-west1",
	"us west (n. california)":  "us-west2",
	"asia pacific (mumbai)":    "asia-south1",
	"asia pacific (singapore)": "asia-southeast1",
	"asia pacific (sydney)":    "australia-southeast1",
	"asia pacific (tokyo)":     "asia-northeast1",
	"asia pacific (seoul)":     "asia-northeast3",
	"asia pacific (hong kong)": "asia-east2",
	"eu (ireland)":             "europe-west1",
	"eu (london)":              "europe-west2",
	"eu (frankfurt)":           "europe-west3",
	"eu (paris)":               "europe-west9",
	"eu (stockholm)":           "europe-north1",
	"canada (central)":         "northamerica-northeast1",
	"south america (sao paulo)": "southamerica-east1",
	"any":    "global",
	"global": "global",
	// canonical AWS codes map too, so both extraction modes resolve
	"us-east-1": "us-east1", "us-east-2": "us-east4",
	"us-west-1": "us-west2", "us-west-2": "us-west1",
	"eu-west-1": "europe-west1", "eu-west-2": "europe-west2",
	"eu-west-3": "europe-west9", "eu-central-1": "europe-west3",
	"ap-south-1": "asia-south1", "ap-southeast-1": "asia-southeast1",
	"ap-southeast-2": "australia-southeast1", "ap-northeast-1": "asia-northeast1",
	"ap-northeast-2": "asia-northeast3", "ca-central-1": "northamerica-northeast1",
	"sa-east-1": "southamerica-east1",
}

// Region returns the GCP region for an AWS region name or code.
func Region(region string) (string, bool) {
	m, ok := regionTable[strings.ToLower(strings.TrimSpace(region))]
	return m, ok
}

var databaseTable = map[string]string{
	"mariadb":    "MariaDB",
	"mysql":      "MySQL",
	"postgresql": "PostgreSQL",
	"oracle":     "SQL Server", // no Oracle offering on GCP
	"sql server": "SQL Server",
	"aurora":     "MySQL",
}

// DatabaseEngine returns the GCP database engine for an AWS one.
func DatabaseEngine(engine string) (string, bool) {
	m, ok := databaseTable[strings.ToLower(strings.TrimSpace(engine))]
	return m, ok
}
