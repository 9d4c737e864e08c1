package imagehost

import (
	"net/url"
	"strings"
)

const deliveryHost = "res.cloudinary.com"

func validDeliveryURL(rawURL, cloudName string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Hostname() == deliveryHost && strings.HasPrefix(u.Path, "/"+cloudName+"/")
}
