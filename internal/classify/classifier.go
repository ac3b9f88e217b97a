package classify

import (
	"regexp"
	"strings"
)

// confidenceScale normalizes raw scores into [0,1]. A fixed constant, not
// adaptive: a score of 10 or more saturates at full confidence.
const confidenceScale = 10.0

// Classify scores a line against every catalog entry and returns the best
// category with a confidence in [0,1]. Keywords score 2 per word, units
// score 1. The strictly highest score wins; equal scores resolve to the
// category declared first in the catalog. A line matching nothing returns
// (CategoryOther, 0).
func Classify(line string) (string, float64) {
	lower := strings.ToLower(line)

	best := CategoryOther
	bestScore := 0

	for _, entry := range catalog {
		score := 0
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				// Longer keywords are stronger evidence.
				score += 2 * len(strings.Fields(keyword))
			}
		}
		for _, unit := range entry.Units {
			if strings.Contains(lower, unit) {
				score++
			}
		}
		if score > bestScore {
			best = entry.Category
			bestScore = score
		}
	}

	if bestScore == 0 {
		return CategoryOther, 0
	}

	confidence := float64(bestScore) / confidenceScale
	if confidence > 1 {
		confidence = 1
	}
	return best, confidence
}

// Per-category service-name patterns. Capturing the name as written keeps
// reports readable without freezing the whole source line.
var namePatterns = map[string]*regexp.Regexp{
	"EC2":          regexp.MustCompile(`(?i)(elastic compute cloud|ec2|compute)`),
	"RDS":          regexp.MustCompile(`(?i)(relational database service|rds|database)`),
	"S3":           regexp.MustCompile(`(?i)(simple storage service|s3|storage)`),
	"Lambda":       regexp.MustCompile(`(?i)(aws lambda|lambda)`),
	"CloudFront":   regexp.MustCompile(`(?i)(cloudfront|cdn)`),
	"EBS":          regexp.MustCompile(`(?i)(elastic block store|ebs)`),
	"VPC":          regexp.MustCompile(`(?i)(virtual private cloud|vpc|nat gateway)`),
	"ElastiCache":  regexp.MustCompile(`(?i)(elasticache)`),
	"SQS":          regexp.MustCompile(`(?i)(simple queue service|sqs)`),
	"SNS":          regexp.MustCompile(`(?i)(simple notification service|sns)`),
	"CloudWatch":   regexp.MustCompile(`(?i)(cloudwatch)`),
	"Route53":      regexp.MustCompile(`(?i)(route 53|route53)`),
	"APIGateway":   regexp.MustCompile(`(?i)(api gateway)`),
	"Kinesis":      regexp.MustCompile(`(?i)(kinesis)`),
	"DynamoDB":     regexp.MustCompile(`(?i)(dynamodb)`),
	"Redshift":     regexp.MustCompile(`(?i)(redshift)`),
	"EMR":          regexp.MustCompile(`(?i)(elastic mapreduce|emr)`),
	"Glue":         regexp.MustCompile(`(?i)(glue)`),
	"Athena":       regexp.MustCompile(`(?i)(athena)`),
	"ECS":          regexp.MustCompile(`(?i)(elastic container service|ecs|fargate)`),
	"EKS":          regexp.MustCompile(`(?i)(elastic kubernetes service|eks)`),
	"EFS":          regexp.MustCompile(`(?i)(elastic file system|efs)`),
	"Backup":       regexp.MustCompile(`(?i)(aws backup|backup)`),
	"DataTransfer": regexp.MustCompile(`(?i)(aws data transfer|data transfer)`),
	"Marketplace":  regexp.MustCompile(`(?i)(aws marketplace|marketplace|claude|bedrock)`),
}

// ServiceName extracts the category's service name as it appears in the
// line, title-cased. Falls back to the category itself.
func ServiceName(line, category string) string {
	re, ok := namePatterns[category]
	if !ok {
		return category
	}
	m := re.FindStringSubmatch(strings.ToLower(line))
	if m == nil {
		return category
	}
	return strings.Title(m[1]) //nolint:staticcheck // billing names are ASCII
}
