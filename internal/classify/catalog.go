// Package classify assigns a service category to invoice lines by scoring
// them against a static keyword/unit catalog.
package classify

// CategoryOther is the fallback category for lines that match nothing.
const CategoryOther = "Other"

// Entry is one category in the catalog: its keywords and usage units.
type Entry struct {
	Category string
	Keywords []string
	Units    []string
}

// catalog is immutable configuration, loaded once and shared read-only by
// every pipeline instance. Declaration order is the tie-break: when two
// categories score the same, the earlier entry wins.
var catalog = []Entry{
	{
		Category: "EC2",
		Keywords: []string{
			"elastic compute cloud", "ec2", "instance", "compute",
			"t2.", "t3.", "t3a.", "t4g.", "m5.", "m5a.", "m5n.", "m5zn.",
			"c5.", "c5a.", "c5n.", "c6g.", "c6gn.", "c6i.",
			"r5.", "r5a.", "r5b.", "r5n.", "r6g.", "r6i.",
			"x1.", "x1e.", "z1d.", "i3.", "i3en.", "i4i.",
			"f1.", "g4dn.", "g4ad.", "p3.", "p4d.",
			"a1.", "u-", "mac1.", "dl1.",
		},
		Units: []string{"hours", "hrs", "hour", "instance-hours", "vcpu-hours"},
	},
	{
		Category: "RDS",
		Keywords: []string{
			"relational database service", "rds", "database",
			"db.", "mysql", "mariadb", "postgresql", "oracle", "sql server",
			"aurora", "backup storage", "snapshot", "multi-az",
		},
		Units: []string{"hours", "hrs", "gb-mo", "gb-month", "iops-mo", "requests"},
	},
	{
		Category: "S3",
		Keywords: []string{
			"simple storage service", "s3", "storage",
			"requests-tier1", "requests-tier2", "timedstorage",
			"glacier", "deep archive", "intelligent tiering",
			"put", "get", "copy", "post", "list", "delete",
		},
		Units: []string{"gb-mo", "gb-month", "requests", "gb", "tb"},
	},
	{
		Category: "Lambda",
		Keywords: []string{"lambda", "aws lambda", "serverless compute", "request", "duration", "gb-second"},
		Units:    []string{"requests", "gb-seconds", "duration-ms"},
	},
	{
		Category: "CloudFront",
		Keywords: []string{"cloudfront", "cdn", "content delivery", "data transfer", "requests", "origin requests"},
		Units:    []string{"gb", "requests", "tb"},
	},
	{
		Category: "EBS",
		Keywords: []string{
			"elastic block store", "ebs", "volume",
			"gp2", "gp3", "io1", "io2", "st1", "sc1",
			"snapshot", "provisioned iops",
		},
		Units: []string{"gb-mo", "gb-month", "iops-mo", "gb"},
	},
	{
		Category: "VPC",
		Keywords: []string{
			"virtual private cloud", "vpc", "nat gateway",
			"vpc endpoint", "transit gateway", "vpn",
			"data transfer", "elastic ip",
		},
		Units: []string{"hours", "gb", "connections"},
	},
	{
		Category: "ElastiCache",
		Keywords: []string{"elasticache", "redis", "memcached", "cache", "cache.", "node hours"},
		Units:    []string{"hours", "node-hours", "gb-mo"},
	},
	{
		Category: "SQS",
		Keywords: []string{"simple queue service", "sqs", "queue", "requests-tier1", "requests-tier2"},
		Units:    []string{"requests", "messages"},
	},
	{
		Category: "SNS",
		Keywords: []string{"simple notification service", "sns", "notifications", "messages", "email", "sms"},
		Units:    []string{"requests", "messages", "notifications"},
	},
	{
		Category: "CloudWatch",
		Keywords: []string{"cloudwatch", "monitoring", "logs", "metrics", "alarms", "dashboards", "insights"},
		Units:    []string{"requests", "metrics", "gb", "alarms"},
	},
	{
		Category: "Route53",
		Keywords: []string{"route 53", "route53", "dns", "hosted zone", "queries", "health checks"},
		Units:    []string{"queries", "hosted zones", "health checks"},
	},
	{
		Category: "APIGateway",
		Keywords: []string{"api gateway", "apigateway", "rest api", "websocket", "http api"},
		Units:    []string{"requests", "messages", "minutes"},
	},
	{
		Category: "Kinesis",
		Keywords: []string{"kinesis", "data streams", "firehose", "analytics", "shard hours", "records"},
		Units:    []string{"shard-hours", "records", "gb", "hours"},
	},
	{
		Category: "DynamoDB",
		Keywords: []string{"dynamodb", "nosql", "table", "read capacity", "write capacity", "on-demand", "provisioned"},
		Units:    []string{"rcu-hours", "wcu-hours", "gb-mo", "requests"},
	},
	{
		Category: "Redshift",
		Keywords: []string{"redshift", "data warehouse", "cluster", "dc2.", "ds2.", "ra3."},
		Units:    []string{"hours", "node-hours", "gb-mo"},
	},
	{
		Category: "EMR",
		Keywords: []string{"elastic mapreduce", "emr", "hadoop", "spark", "cluster hours"},
		Units:    []string{"hours", "cluster-hours", "instance-hours"},
	},
	{
		Category: "Glue",
		Keywords: []string{"glue", "etl", "crawler", "job runs", "dpu-hours", "development endpoint"},
		Units:    []string{"dpu-hours", "hours", "requests"},
	},
	{
		Category: "Athena",
		Keywords: []string{"athena", "query", "data scanned", "serverless query"},
		Units:    []string{"gb", "tb", "queries"},
	},
	{
		Category: "ECS",
		Keywords: []string{"elastic container service", "ecs", "fargate", "container", "task", "vcpu-hours", "gb-hours"},
		Units:    []string{"vcpu-hours", "gb-hours", "hours"},
	},
	{
		Category: "EKS",
		Keywords: []string{"elastic kubernetes service", "eks", "kubernetes", "cluster hours"},
		Units:    []string{"hours", "cluster-hours"},
	},
	{
		Category: "EFS",
		Keywords: []string{"elastic file system", "efs", "file system", "throughput", "infrequent access", "one zone"},
		Units:    []string{"gb-mo", "gb", "requests"},
	},
	{
		Category: "Backup",
		Keywords: []string{"aws backup", "backup storage", "backup", "warm backup", "cold backup"},
		Units:    []string{"gb-month", "gb-mo", "snapshots"},
	},
	{
		Category: "DataTransfer",
		Keywords: []string{"data transfer", "aws data transfer", "transfer", "cloudfront", "inter-region", "internet"},
		Units:    []string{"gb", "tb", "bytes"},
	},
	{
		Category: "Marketplace",
		Keywords: []string{"marketplace", "aws marketplace", "claude", "bedrock", "third-party", "software usage"},
		Units:    []string{"tokens", "requests", "hours", "units"},
	},
	{
		Category: CategoryOther,
		Keywords: []string{"support", "tax", "credits", "refunds", "marketplace", "training", "certification"},
		Units:    []string{"credits", "hours"},
	},
}

// Catalog returns the ordered category catalog. Callers must treat the
// returned slice as read-only.
func Catalog() []Entry { return catalog }

// Categories returns category names in declaration order.
func Categories() []string {
	names := make([]string, len(catalog))
	for i, e := range catalog {
		names[i] = e.Category
	}
	return names
}
