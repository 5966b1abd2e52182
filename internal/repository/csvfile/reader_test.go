//go:build !integration

package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"olistInsights/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleFiles = map[string]string{
	CustomersFile: "customer_id,customer_unique_id,customer_zip_code_prefix,customer_city,customer_state\n" +
		"c1,u1,01001,sao paulo,SP\n",
	OrdersFile: "order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at," +
		"order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date\n" +
		"o1,c1,delivered,2018-01-01 10:00:00,2018-01-01 11:00:00,2018-01-02 09:00:00,2018-01-05 10:00:00,2018-01-10 00:00:00\n" +
		"o2,c1,canceled,2018-02-01 10:00:00,,,,2018-02-10 00:00:00\n",
	OrderItemsFile: "order_id,order_item_id,product_id,seller_id,shipping_limit_date,price,freight_value\n" +
		"o1,1,p1,s1,2018-01-03 10:00:00,100.00,10.50\n",
	PaymentsFile: "order_id,payment_sequential,payment_type,payment_installments,payment_value\n" +
		"o1,1,credit_card,3,110.50\n",
	ReviewsFile: "review_id,order_id,review_score,review_comment_title,review_comment_message,review_creation_date,review_answer_timestamp\n" +
		"r1,o1,5,,\"great, fast\",2018-01-06 00:00:00,2018-01-07 12:00:00\n",
	ProductsFile: "product_id,product_category_name,product_name_lenght,product_description_lenght,product_photos_qty," +
		"product_weight_g,product_length_cm,product_height_cm,product_width_cm\n" +
		"p1,moveis_decoracao,40,287,1,500,20,10,15\n" +
		"p2,,,,,,,,\n",
	SellersFile: "seller_id,seller_zip_code_prefix,seller_city,seller_state\n" +
		"s1,13023,campinas,SP\n",
	TranslationsFile: "product_category_name,product_category_name_english\n" +
		"moveis_decoracao,furniture_decor\n",
}

func writeSample(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return dir
}

func TestReader_ReadDataset(t *testing.T) {
	dir := writeSample(t, sampleFiles)

	ds, err := NewReader(dir).ReadDataset(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Orders, 2)
	assert.NotNil(t, ds.Orders[0].DeliveredCustomerAt)
	assert.Nil(t, ds.Orders[1].DeliveredCustomerAt)
	assert.Nil(t, ds.Orders[1].ApprovedAt)

	require.Len(t, ds.OrderItems, 1)
	assert.Equal(t, "100.00", ds.OrderItems[0].Price.StringFixed(2))
	assert.Equal(t, "10.50", ds.OrderItems[0].FreightValue.StringFixed(2))

	require.Len(t, ds.Reviews, 1)
	assert.Equal(t, 5, ds.Reviews[0].Score)
	assert.Equal(t, "great, fast", ds.Reviews[0].CommentMessage)

	require.Len(t, ds.Products, 2)
	require.NotNil(t, ds.Products[0].NameLength)
	assert.Equal(t, 40, *ds.Products[0].NameLength)
	assert.Equal(t, "", ds.Products[1].CategoryName)
	assert.Nil(t, ds.Products[1].WeightG)

	assert.Len(t, ds.Sellers, 1)
	assert.Len(t, ds.Translations, 1)
	assert.Empty(t, ds.Geolocations)
}

func TestReader_ReadDataset_WithGeolocation(t *testing.T) {
	files := map[string]string{}
	for k, v := range sampleFiles {
		files[k] = v
	}
	files[GeolocationFile] = "geolocation_zip_code_prefix,geolocation_lat,geolocation_lng,geolocation_city,geolocation_state\n" +
		"01037,-23.5456,-46.6393,sao paulo,SP\n"

	ds, err := NewReader(writeSample(t, files)).ReadDataset(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Geolocations, 1)
	assert.InDelta(t, -23.5456, ds.Geolocations[0].Lat, 1e-9)
}

func TestReader_Products_CorrectedHeaders(t *testing.T) {
	dir := writeSample(t, map[string]string{
		ProductsFile: "product_id,product_category_name,product_name_length,product_description_length\n" +
			"p1,esporte_lazer,12,300\n",
	})

	products, err := NewReader(dir).Products()
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.NotNil(t, products[0].DescriptionLength)
	assert.Equal(t, 300, *products[0].DescriptionLength)
}

func TestReader_ReadDataset_MissingFile(t *testing.T) {
	files := map[string]string{}
	for k, v := range sampleFiles {
		if k != PaymentsFile {
			files[k] = v
		}
	}

	_, err := NewReader(writeSample(t, files)).ReadDataset(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrLoad)
}

func TestReader_ReadDataset_BadTimestamp(t *testing.T) {
	files := map[string]string{}
	for k, v := range sampleFiles {
		files[k] = v
	}
	files[OrdersFile] = "order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at," +
		"order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date\n" +
		"o1,c1,delivered,yesterday,,,,\n"

	_, err := NewReader(writeSample(t, files)).ReadDataset(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrLoad)
	assert.Contains(t, err.Error(), "order_purchase_timestamp")
}
