// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package dns

import (
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/route53"
	"net"
)

// recordTTL is short so a replaced server is found quickly.
const recordTTL = 60

type Route53DNS struct {
	svc    *route53.Route53
	domain string
	zoneID string
}

func NewRoute53DNS(session *session.Session, domain string, zoneID string) (*Route53DNS, error) {
	return &Route53DNS{
		svc:    route53.New(session),
		domain: domain,
		zoneID: zoneID,
	}, nil
}

// RecordName is the host name clients connect to for a server slot.
func RecordName(domain, region string, slot int) string {
	return fmt.Sprintf("play-%s-%d.%s", region, slot, domain)
}

func (route53DNS *Route53DNS) UpdateRoute(region string, slot int, address net.IP) error {
	recordType := "A"
	if address.To4() == nil {
		recordType = "AAAA"
	}

	_, err := route53DNS.svc.ChangeResourceRecordSets(&route53.ChangeResourceRecordSetsInput{
		ChangeBatch: &route53.ChangeBatch{
			Comment: aws.String("cosmic server heartbeat"),
			Changes: []*route53.Change{
				{
					Action: aws.String(route53.ChangeActionUpsert),
					ResourceRecordSet: &route53.ResourceRecordSet{
						Name:            aws.String(RecordName(route53DNS.domain, region, slot)),
						Type:            aws.String(recordType),
						ResourceRecords: []*route53.ResourceRecord{{Value: aws.String(address.String())}},
						TTL:             aws.Int64(recordTTL),
					},
				},
			},
		},
		HostedZoneId: aws.String(route53DNS.zoneID),
	})
	return err
}
